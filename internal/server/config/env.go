package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvFile            = "ENV_FILE"
	EnvHTTPAddr        = "DOCFOLDERS_ADDR"
	EnvDatabaseDSN     = "DATABASE_DSN"
	EnvJWTSecret       = "JWT_SECRET"
	EnvS3AccessKey     = "S3_ACCESS_KEY"
	EnvS3SecretKey     = "S3_SECRET_KEY"
	EnvS3Bucket        = "S3_BUCKET"
	EnvS3Region        = "S3_REGION"
	EnvS3BaseEndpoint  = "S3_ENDPOINT"
	EnvCORSOrigins     = "CORS_ORIGINS"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

// env resolves a variable from the process first and the .env file second.
type env map[string]string

// readEnv parses the file named by ENV_FILE (".env" when unset). A missing
// file yields an empty set; the process environment is never modified.
func readEnv() env {
	path := os.Getenv(EnvFile)
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return env{}
		}
		panic(err)
	}
	return vars
}

func (e env) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e[key]
	return v, ok
}

// str keeps an explicitly empty variable: S3_BUCKET= turns storage off.
func (e env) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

// parseEnv overlays config with every variable that is present in the
// process environment or the .env file.
func parseEnv(config *Config) {
	e := readEnv()

	e.str(EnvHTTPAddr, &config.HTTPAddr)
	e.str(EnvDatabaseDSN, &config.DatabaseDSN)
	e.str(EnvJWTSecret, &config.JWTSecret)
	e.str(EnvS3AccessKey, &config.S3AccessKey)
	e.str(EnvS3SecretKey, &config.S3SecretKey)
	e.str(EnvS3Bucket, &config.S3Bucket)
	e.str(EnvS3Region, &config.S3Region)
	e.str(EnvS3BaseEndpoint, &config.S3BaseEndpoint)

	if v, ok := e.lookup(EnvCORSOrigins); ok {
		config.CORSOrigins = splitList(v)
	}
	if v, ok := e.lookup(EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.ShutdownTimeout = d
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
