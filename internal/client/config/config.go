package config

import (
	"os"
	"time"
)

// TokenEnv is read when no token is given on the command line.
const TokenEnv = "DOCFOLDERS_TOKEN"

type Config struct {
	BaseURL             string
	Token               string
	OnlineCheckInterval time.Duration
	CachePath           string
	RequestTimeout      time.Duration
}

func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.CachePath = "docfolders.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig applies defaults, the JSON file, the environment and the flags
// in that order. Malformed input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v := os.Getenv(TokenEnv); v != "" {
		cfg.Token = v
	}
}
