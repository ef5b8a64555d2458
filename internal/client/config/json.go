package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docfolders/internal/flagx"
	"github.com/dmitrijs2005/docfolders/internal/timex"
)

// JsonConfig is the file representation of Config. The token is
// deliberately absent; it comes from the environment or -t.
type JsonConfig struct {
	BaseURL             string         `json:"base_url"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	CachePath           string         `json:"cache_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config. Fields missing
// from the file keep their current values.
func parseJson(cfg *Config) {
	path := flagx.JSONConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.CachePath != "" {
		cfg.CachePath = jc.CachePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
