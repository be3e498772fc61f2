// Package config provides configuration management for the paper catalog service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the paper catalog service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Dataset contains dataset source and fetch settings.
	Dataset DatasetConfig `mapstructure:"dataset"`
	// Catalog contains browse pipeline settings.
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Sessions contains browse session lifecycle settings.
	Sessions SessionsConfig `mapstructure:"sessions"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatasetConfig holds dataset source and fetch configuration.
type DatasetConfig struct {
	// Sources is the list of dataset documents to load at startup.
	// Each entry is an http(s) URL or a local file path. Zero or more;
	// documents are concatenated in order.
	Sources []string `mapstructure:"sources"`
	// Timeout is the timeout per fetch.
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum fetches per second.
	RateLimit float64 `mapstructure:"rate_limit"`
	// BurstSize is the rate limiter burst size.
	BurstSize int `mapstructure:"burst_size"`
	// MaxRetries is the maximum retry attempts per source.
	MaxRetries int `mapstructure:"max_retries"`
	// RetryDelay is the base delay between retries.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// UserAgent is the User-Agent header sent with HTTP fetches.
	UserAgent string `mapstructure:"user_agent"`
}

// CatalogConfig holds browse pipeline configuration.
type CatalogConfig struct {
	// TagCap is the maximum number of tags exposed in the facet index.
	TagCap int `mapstructure:"tag_cap"`
	// DefaultPageSize is the page size for queries that do not specify one.
	DefaultPageSize int `mapstructure:"default_page_size"`
	// MaxPageSize is the largest page size a client may request.
	MaxPageSize int `mapstructure:"max_page_size"`
	// SuggestionLimit is the maximum number of search suggestions returned.
	SuggestionLimit int `mapstructure:"suggestion_limit"`
}

// SessionsConfig holds browse session lifecycle configuration.
type SessionsConfig struct {
	// TTL is how long an idle session survives before being swept.
	TTL time.Duration `mapstructure:"ttl"`
	// SweepInterval is how often the idle sweeper runs.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr, file path).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("PAPERCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if present
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/paper-catalog-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Dataset defaults
	v.SetDefault("dataset.sources", []string{"data/papers.json"})
	v.SetDefault("dataset.timeout", "30s")
	v.SetDefault("dataset.rate_limit", 10.0)
	v.SetDefault("dataset.burst_size", 10)
	v.SetDefault("dataset.max_retries", 3)
	v.SetDefault("dataset.retry_delay", "1s")
	v.SetDefault("dataset.user_agent", "ScholarStack-PaperCatalog/1.0")

	// Catalog defaults
	v.SetDefault("catalog.tag_cap", 40)
	v.SetDefault("catalog.default_page_size", 20)
	v.SetDefault("catalog.max_page_size", 100)
	v.SetDefault("catalog.suggestion_limit", 5)

	// Session defaults
	v.SetDefault("sessions.ttl", "30m")
	v.SetDefault("sessions.sweep_interval", "1m")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}

	// Validate dataset config
	if c.Dataset.Timeout <= 0 {
		return fmt.Errorf("dataset timeout must be positive")
	}
	if c.Dataset.RateLimit <= 0 {
		return fmt.Errorf("dataset rate_limit must be positive")
	}
	if c.Dataset.MaxRetries < 0 {
		return fmt.Errorf("dataset max_retries must not be negative")
	}

	// Validate catalog config
	if c.Catalog.TagCap <= 0 {
		return fmt.Errorf("catalog tag_cap must be positive")
	}
	if c.Catalog.DefaultPageSize <= 0 {
		return fmt.Errorf("catalog default_page_size must be positive")
	}
	if c.Catalog.MaxPageSize < c.Catalog.DefaultPageSize {
		return fmt.Errorf("catalog max_page_size (%d) must be >= default_page_size (%d)",
			c.Catalog.MaxPageSize, c.Catalog.DefaultPageSize)
	}
	if c.Catalog.SuggestionLimit <= 0 {
		return fmt.Errorf("catalog suggestion_limit must be positive")
	}

	// Validate session config
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("sessions ttl must be positive")
	}
	if c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("sessions sweep_interval must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
