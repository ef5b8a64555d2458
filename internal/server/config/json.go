package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docfolders/internal/flagx"
	"github.com/dmitrijs2005/docfolders/internal/timex"
)

// JsonConfig is the file representation of Config. Absent fields keep the
// values already in Config.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	JWTSecret       string         `json:"jwt_secret"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	S3Bucket        *string        `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	CORSOrigins     []string       `json:"cors_origins"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the file named by -c/-config, if any.
// An unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.JSONConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	set(&config.HTTPAddr, c.HTTPAddr)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.JWTSecret, c.JWTSecret)
	set(&config.S3AccessKey, c.S3AccessKey)
	set(&config.S3SecretKey, c.S3SecretKey)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
