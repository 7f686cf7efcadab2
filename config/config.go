// Package config loads and validates YAML configuration for processes
// embedding dashsync: which transport delivers sync batches, where the
// metrics endpoint listens, and how verbose logging is.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/dashsync/errors"
)

// Transport kinds.
const (
	TransportWebSocket = "websocket"
	TransportNATS      = "nats"
	TransportCapture   = "capture"
)

// Config is the complete embedding-process configuration.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TransportConfig selects and parameterizes the sync transport.
type TransportConfig struct {
	Kind          string `yaml:"kind"`           // websocket, nats, or capture
	URL           string `yaml:"url"`            // renderer or NATS server URL
	SubjectPrefix string `yaml:"subject_prefix"` // NATS only
	WriteTimeout  string `yaml:"write_timeout"`  // duration string, e.g. "10s"
	MaxAttempts   int    `yaml:"max_attempts"`   // dial attempts before giving up
}

// WriteTimeoutDuration parses the write timeout. Zero means unset.
func (t TransportConfig) WriteTimeoutDuration() (time.Duration, error) {
	if t.WriteTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.WriteTimeout)
	if err != nil {
		return 0, errors.WrapInvalid(err, "config", "WriteTimeoutDuration", "parse write_timeout")
	}
	if d < 0 {
		return 0, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "WriteTimeoutDuration",
			"write_timeout cannot be negative")
	}
	return d, nil
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when no file is given: capture
// transport, metrics off, info logging.
func Default() Config {
	return Config{
		Transport: TransportConfig{
			Kind:         TransportCapture,
			WriteTimeout: "10s",
			MaxAttempts:  10,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config", "Load", "read file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "parse yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Transport.Kind {
	case TransportCapture:
	case TransportWebSocket, TransportNATS:
		if c.Transport.URL == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate",
				fmt.Sprintf("transport kind %q requires a url", c.Transport.Kind))
		}
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Validate",
			fmt.Sprintf("unknown transport kind %q", c.Transport.Kind))
	}

	if _, err := c.Transport.WriteTimeoutDuration(); err != nil {
		return err
	}
	if c.Transport.MaxAttempts < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Validate",
			"transport max_attempts cannot be negative")
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Validate",
			fmt.Sprintf("metrics port %d out of range", c.Metrics.Port))
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured log level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "SlogLevel",
			fmt.Sprintf("unknown log level %q", l.Level))
	}
}
