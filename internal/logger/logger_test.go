package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battlecard.log")

	log, err := New("prod", path)
	require.NoError(t, err)
	log.With("component", "test").Info("card loaded", "topic", "Sepsis")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "card loaded")
	assert.Contains(t, string(data), `"topic":"Sepsis"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored", "k", 1)
	log.Sync()
}
