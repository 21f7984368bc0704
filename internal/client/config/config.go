// Package config handles configuration for the client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the PrivateMe CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - DatabasePath: path to the local note store file.
//   - KeyPath: path to the stored device encryption key.
//   - RequestTimeout: per-request timeout for backend calls.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	KeyPath             string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3000"
	c.DatabasePath = "notes.db"
	c.KeyPath = "encryption.key"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
