package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv("XDG_CACHE_HOME", "/cache")

	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api", cfg.APIURL)
	assert.Equal(t, 50*time.Millisecond, cfg.RevealLatency)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, filepath.Join("/data", "battlecard", "battlecard.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/state", "battlecard", "battlecard.log"), cfg.LogFile)
	assert.Equal(t, filepath.Join("/cache", "battlecard", "diagrams"), cfg.DiagramDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"BATTLECARD_API_URL":        "https://cards.example.com/api",
		"BATTLECARD_REVEAL_LATENCY": "10ms",
		"BATTLECARD_DB":             "/tmp/x.db",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cards.example.com/api", cfg.APIURL)
	assert.Equal(t, 10*time.Millisecond, cfg.RevealLatency)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestLoadFrom_BadDuration(t *testing.T) {
	_, err := LoadFrom(map[string]string{"BATTLECARD_REVEAL_LATENCY": "soon"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{APIURL: "http://x/api", RevealLatency: time.Millisecond, RequestTimeout: time.Second}
	require.NoError(t, base.Validate())

	bad := base
	bad.APIURL = "ftp://x"
	assert.Error(t, bad.Validate())

	bad = base
	bad.RevealLatency = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.RequestTimeout = -time.Second
	assert.Error(t, bad.Validate())
}
