package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"gt=0,lte=65535"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Path is the sqlite database file holding generation-run history.
	Path string `mapstructure:"path" validate:"required"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type GenerationConfig struct {
	// DefaultSender is the mailbox whose CPanel log rows count as
	// notification deliveries.
	DefaultSender string `mapstructure:"default_sender" validate:"required,email"`
	// MaxUploadMB caps each uploaded file.
	MaxUploadMB int `mapstructure:"max_upload_mb" validate:"gt=0"`
}
