package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"docfolders"}, args...)
}

func writeJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		BaseURL:             "http://127.0.0.1:8080",
		OnlineCheckInterval: 3 * time.Second,
		CachePath:           "docfolders.db",
		RequestTimeout:      15 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://api.example", "-t", "tok", "-i", "10", "-d", "/tmp/c.db", "-r", "30"},
			expected: &Config{
				BaseURL: "https://api.example", Token: "tok", OnlineCheckInterval: 10 * time.Second,
				CachePath: "/tmp/c.db", RequestTimeout: 30 * time.Second,
			},
		},
		{
			name:        "bad interval",
			args:        []string{"-i", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeJSON(t, map[string]any{
		"base_url":              "https://docs.example",
		"online_check_interval": "7s",
		"request_timeout":       int64(2 * time.Second),
	})

	t.Run("overlays present fields", func(t *testing.T) {
		withArgs(t, "-config", path)
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://docs.example", cfg.BaseURL)
		assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "docfolders.db", cfg.CachePath, "missing field keeps default")
	})

	t.Run("no file requested", func(t *testing.T) {
		withArgs(t)
		cfg := &Config{BaseURL: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.BaseURL)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o600))
		withArgs(t, "-c", bad)
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeJSON(t, map[string]any{"base_url": "https://from-json"})

	t.Run("env token used without -t", func(t *testing.T) {
		t.Setenv(TokenEnv, "env-token")
		withArgs(t, "-c", path)

		cfg := LoadConfig()
		assert.Equal(t, "https://from-json", cfg.BaseURL)
		assert.Equal(t, "env-token", cfg.Token)
	})

	t.Run("flags beat env and json", func(t *testing.T) {
		t.Setenv(TokenEnv, "env-token")
		withArgs(t, "-c", path, "-a", "https://from-flag", "-t", "flag-token")

		cfg := LoadConfig()
		assert.Equal(t, "https://from-flag", cfg.BaseURL)
		assert.Equal(t, "flag-token", cfg.Token)
		assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
	})
}
