// Package config loads the settings of the web front end: defaults, then an
// optional YAML file, then CCONV_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/raymyers/cconv/pkg/logging"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. CCONV_ADDR.
	EnvPrefix = "CCONV_"
	// ConfigEnv names the variable holding the config file path when no
	// path is given explicitly.
	ConfigEnv = "CCONV_CONFIG"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, "host:port"
	Addr     string `env:"ADDR" yaml:"addr"`
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`
	// CacheTTL is how long a conversion result is reused; 0 disables the cache
	CacheTTL time.Duration `env:"CACHE_TTL" yaml:"cacheTTL"`
	// MaxBodyBytes caps request bodies
	MaxBodyBytes int64         `env:"MAX_BODY_BYTES" yaml:"maxBodyBytes"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" yaml:"readTimeout"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" yaml:"writeTimeout"`
	// AllowOrigins lists CORS origins; empty allows all
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," yaml:"allowOrigins"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Addr:         ":8000",
		LogLevel:     "info",
		CacheTTL:     time.Minute * 10,
		MaxBodyBytes: 1024 * 1024, // 1MB
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 20,
	}
}

// Load merges defaults, the YAML file at path (or at $CCONV_CONFIG when
// path is empty) and the environment, then validates the result. A missing
// file is an error only when a path was asked for.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("apply env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var ee []error
	if c.Addr == "" {
		ee = append(ee, fmt.Errorf("%w: addr is empty", ErrInvalid))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		ee = append(ee, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if c.CacheTTL < 0 {
		ee = append(ee, fmt.Errorf("%w: cacheTTL %v is negative", ErrInvalid, c.CacheTTL))
	}
	if c.MaxBodyBytes <= 0 {
		ee = append(ee, fmt.Errorf("%w: maxBodyBytes must be positive", ErrInvalid))
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		ee = append(ee, fmt.Errorf("%w: timeouts must be positive", ErrInvalid))
	}
	return errors.Join(ee...)
}
