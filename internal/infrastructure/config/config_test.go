package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load reads through the global viper instance; reset it so modes set by
// one case cannot leak into the next.
func load(t *testing.T, env string) (*Config, error) {
	t.Helper()
	viper.Reset()
	return Load(env)
}

func TestLoadMapsEnvironmentToGinMode(t *testing.T) {
	cases := []struct {
		env  string
		mode string
	}{
		{"development", "debug"},
		{"dev", "debug"},
		{"production", "release"},
		{"prod", "release"},
		{"test", "test"},
	}

	for _, tc := range cases {
		cfg, err := load(t, tc.env)
		require.NoError(t, err, tc.env)
		assert.Equal(t, tc.mode, cfg.Server.Mode, tc.env)
	}
}

func TestLoadUnknownEnvironmentKeepsDefaultMode(t *testing.T) {
	cfg, err := load(t, "staging")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, "development")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
	assert.Equal(t, "razones.db", cfg.Database.Path)
	assert.Equal(t, "cobranzaypatrocinio@cobypat.com", cfg.Generation.DefaultSender)
	assert.Equal(t, 32, cfg.Generation.MaxUploadMB)
}
