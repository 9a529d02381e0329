package run

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New(KindRazones, []string{"Razon_1001_55.docx", "Razon_1002_56.docx"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(r.SID, "run_"))
	assert.Equal(t, KindRazones, r.Kind)
	assert.Equal(t, 2, r.DocumentCount)

	files, err := r.FileNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Razon_1001_55.docx", "Razon_1002_56.docx"}, files)
}

func TestNew_EmptyFiles(t *testing.T) {
	r, err := New(KindOrdenesPago, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, r.DocumentCount)
	files, err := r.FileNames()
	require.NoError(t, err)
	assert.Empty(t, files)
}
