// Package config loads runtime configuration for the docfolders CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c or -config.
//  3. The DOCFOLDERS_TOKEN environment variable for the bearer token.
//  4. Command-line flags.
//
// Flags
//
//	-a string   base URL of the backend API
//	-t string   bearer token issued by the identity provider
//	-i int      online status check interval (seconds)
//	-d string   path of the local cache database
//	-r int      per-request timeout (seconds)
//
// JSON intervals use timex.Duration, so both "3s" and integer nanoseconds
// are accepted:
//
//	{
//	  "base_url": "https://docs.example.com",
//	  "online_check_interval": "5s",
//	  "cache_path": "/var/lib/docfolders/cache.db",
//	  "request_timeout": "20s"
//	}
package config
