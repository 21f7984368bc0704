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

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "notes", c.S3Bucket)
	assert.NotEmpty(t, c.DatabaseDSN)
}

func Test_parseJson_Overlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(map[string]any{
		"endpoint_addr":                  ":8080",
		"secret_key":                     "supersecret",
		"access_token_validity_duration": "30m",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "supersecret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "notes", cfg.S3Bucket)
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-a", ":9999"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
}
