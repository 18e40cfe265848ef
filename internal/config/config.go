// Package config loads the server and presentation settings from a YAML file
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appConfigDirName = "roulette-neighbors"
	configFileName   = "config.yaml"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Neighbors NeighborsConfig `yaml:"neighbors"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	CORS           CORSConfig    `yaml:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NeighborsConfig bounds the default radius the presentation layer offers
// and the largest explicit radius it resolves. The parser itself never
// checks either.
type NeighborsConfig struct {
	Default    int   `yaml:"default"`
	MinDefault int   `yaml:"min_default"`
	MaxDefault int   `yaml:"max_default"`
	Choices    []int `yaml:"choices"`
	MaxRadius  int   `yaml:"max_radius"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           17889,
			RequestTimeout: 30 * time.Second,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
		},
		Neighbors: NeighborsConfig{
			Default:    1,
			MinDefault: 1,
			MaxDefault: 3,
			Choices:    []int{1, 3},
			MaxRadius:  100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path means DefaultPath(); a missing file there is not an
// error. A missing file at an explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv("ROULETTE_CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise surface as confusing
// runtime failures.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}

	n := c.Neighbors
	if n.MinDefault < 0 {
		return fmt.Errorf("neighbors.min_default must be non-negative, got %d", n.MinDefault)
	}
	if n.MinDefault > n.MaxDefault {
		return fmt.Errorf("neighbors.min_default %d exceeds max_default %d", n.MinDefault, n.MaxDefault)
	}
	if !n.Allowed(n.Default) {
		return fmt.Errorf("neighbors.default %d outside %d-%d", n.Default, n.MinDefault, n.MaxDefault)
	}
	if n.MaxRadius < n.MaxDefault {
		return fmt.Errorf("neighbors.max_radius %d below max_default %d", n.MaxRadius, n.MaxDefault)
	}
	for _, choice := range n.Choices {
		if !n.Allowed(choice) {
			return fmt.Errorf("neighbors.choices entry %d outside %d-%d", choice, n.MinDefault, n.MaxDefault)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Allowed reports whether d is an acceptable default radius.
func (n NeighborsConfig) Allowed(d int) bool {
	return d >= n.MinDefault && d <= n.MaxDefault
}

func applyEnv(cfg *Config) error {
	if s := os.Getenv("ROULETTE_HOST"); s != "" {
		cfg.Server.Host = s
	}
	if err := envInt("ROULETTE_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if err := envInt("ROULETTE_DEFAULT_NEIGHBORS", &cfg.Neighbors.Default); err != nil {
		return err
	}
	if err := envInt("ROULETTE_MAX_RADIUS", &cfg.Neighbors.MaxRadius); err != nil {
		return err
	}
	if s := os.Getenv("ROULETTE_LOG_LEVEL"); s != "" {
		cfg.Log.Level = s
	}
	return nil
}

func envInt(k string, dst *int) error {
	s := os.Getenv(k)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", k, s)
	}
	*dst = v
	return nil
}

// DefaultPath returns the config file location inside an OS-appropriate
// config directory.
func DefaultPath() string {
	return filepath.Join(appDataDir(), configFileName)
}

func appDataDir() string {
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		return filepath.Join(d, appConfigDirName)
	}
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return filepath.Join(h, "."+appConfigDirName)
	}
	return "."
}
