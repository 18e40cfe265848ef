package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:17889", cfg.Server.Addr())
	assert.Equal(t, []int{1, 3}, cfg.Neighbors.Choices)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 9000
  request_timeout: 5s
  cors:
    allowed_origins: ["http://localhost:5173"]
neighbors:
  default: 2
  choices: [1, 2, 3]
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, 2, cfg.Neighbors.Default)
	assert.Equal(t, 3, cfg.Neighbors.MaxDefault)
	assert.Equal(t, []int{1, 2, 3}, cfg.Neighbors.Choices)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMissingDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROULETTE_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("ROULETTE_PORT", "9100")
	t.Setenv("ROULETTE_HOST", "localhost")
	t.Setenv("ROULETTE_DEFAULT_NEIGHBORS", "3")
	t.Setenv("ROULETTE_LOG_LEVEL", "warn")
	t.Setenv("ROULETTE_MAX_RADIUS", "36")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9100", cfg.Server.Addr())
	assert.Equal(t, 3, cfg.Neighbors.Default)
	assert.Equal(t, 36, cfg.Neighbors.MaxRadius)
	assert.Equal(t, "warn", cfg.Log.Level)

	t.Setenv("ROULETTE_PORT", "abc")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"default above max", func(c *Config) { c.Neighbors.Default = 4 }},
		{"default below min", func(c *Config) { c.Neighbors.Default = 0 }},
		{"min above max", func(c *Config) { c.Neighbors.MinDefault = 5 }},
		{"max radius below max default", func(c *Config) { c.Neighbors.MaxRadius = 2 }},
		{"choice out of range", func(c *Config) { c.Neighbors.Choices = []int{1, 7} }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"zero timeout", func(c *Config) { c.Server.RequestTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}
