package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docfolders/internal/flagx"
)

func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")
	fs.StringVar(&cfg.CachePath, "d", cfg.CachePath, "local cache database path")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	timeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
