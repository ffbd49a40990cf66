// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// CVGEN_PDF_POOL_SIZE for pdf.pool_size
const EnvPrefix = "CVGEN"

// Config is the full runtime configuration. Every field has a default, so
// an empty file or no file at all yields a working setup.
type Config struct {
	Server      ServerConfig `mapstructure:"server"`
	PDF         PDFConfig    `mapstructure:"pdf"`
	DOCX        DOCXConfig   `mapstructure:"docx"`
	Batch       BatchConfig  `mapstructure:"batch"`
	Cache       CacheConfig  `mapstructure:"cache"`
	Log         LogConfig    `mapstructure:"log"`
	DatabaseURL string       `mapstructure:"database_url"` // PostgreSQL connection URL, empty disables the profile store
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PDFConfig holds browser pool settings
type PDFConfig struct {
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
	ChromePath string        `mapstructure:"chrome_path"`
	Breaker    BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig holds circuit breaker settings for PDF rendering
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

// DOCXConfig selects the DOCX failure policy
type DOCXConfig struct {
	PlaceholderOnError bool `mapstructure:"placeholder_on_error"`
}

// BatchConfig bounds batch fan-out
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// CacheConfig configures the Redis result cache. An empty RedisAddr
// disables caching.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
	Prefix    string        `mapstructure:"prefix"`
}

// LogConfig selects the logger encoding and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from defaults, an optional file and CVGEN_
// environment variables, in increasing order of precedence. When path is
// empty, cvgen.yaml (or .json) is looked up in the working directory and
// silently skipped if absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// DATABASE_URL is honoured unprefixed as well
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("cvgen")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("config error: server timeouts must be non-negative")
	}
	if c.PDF.PoolSize < 0 {
		return fmt.Errorf("config error: 'pdf.pool_size' must be non-negative")
	}
	if c.PDF.Timeout < 0 {
		return fmt.Errorf("config error: 'pdf.timeout' must be non-negative")
	}
	if c.PDF.Breaker.Interval < 0 || c.PDF.Breaker.Timeout < 0 {
		return fmt.Errorf("config error: breaker durations must be non-negative")
	}
	if c.PDF.Breaker.FailureThreshold < 0 || c.PDF.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("config error: 'pdf.breaker.failure_threshold' must be between 0.0 and 1.0")
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("config error: 'batch.concurrency' must be non-negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config error: 'cache.ttl' must be non-negative")
	}
	if c.Cache.DB < 0 {
		return fmt.Errorf("config error: 'cache.db' must be non-negative")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
