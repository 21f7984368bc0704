package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.ServerBaseURL)
	assert.Equal(t, "notes.db", c.DatabasePath)
	assert.Equal(t, "encryption.key", c.KeyPath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_Overlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"server_base_url":       "http://notes.example:9000",
		"database_path":         "/tmp/notes.db",
		"online_check_interval": "10s",
	})

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://notes.example:9000", cfg.ServerBaseURL)
	assert.Equal(t, "/tmp/notes.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
	// unset JSON fields keep their defaults
	assert.Equal(t, "encryption.key", cfg.KeyPath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func Test_parseJson_NoConfigFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{ServerBaseURL: "http://kept:1"}
	parseJson(cfg)
	assert.Equal(t, "http://kept:1", cfg.ServerBaseURL)
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-a", "http://flagged:3000", "-i", "7"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://flagged:3000", cfg.ServerBaseURL)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "notes.db", cfg.DatabasePath)
}
