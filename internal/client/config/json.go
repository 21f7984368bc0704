package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nkorotkov/privateme/internal/flagx"
	"github.com/nkorotkov/privateme/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be given as strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	DatabasePath        string         `json:"database_path"`
	KeyPath             string         `json:"key_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. Missing flag means no JSON is loaded. Read or parse
// errors panic; the intended order is defaults -> parseJson -> parseFlags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyPath != "" {
		cfg.KeyPath = jc.KeyPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
}
