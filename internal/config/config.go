// Package config defines the configuration structures for molgraph.  Loading
// lives in loader.go and defaults in defaults.go; this file holds only plain
// data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/internal/infrastructure/cache/redis"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/internal/infrastructure/storage/minio"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// LoggerConfig converts the section into logging.LogConfig.
func (l LogConfig) LoggerConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:       logging.Level(l.Level),
		Format:      l.Format,
		OutputPaths: l.OutputPaths,
	}
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	Path                 string `mapstructure:"path"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
}

// CollectorConfig converts the section into prometheus.CollectorConfig.
func (m MetricsConfig) CollectorConfig() prometheus.CollectorConfig {
	return prometheus.CollectorConfig{
		Namespace:            m.Namespace,
		EnableProcessMetrics: m.EnableProcessMetrics,
		EnableGoMetrics:      m.EnableGoMetrics,
	}
}

// DatasetConfig selects the default vocabulary and where graph files live.
type DatasetConfig struct {
	Default string `mapstructure:"default"`
	Source  string `mapstructure:"source"` // "local" | "minio"
	Root    string `mapstructure:"root"`
}

// CacheConfig controls the reconstruction result cache.  Redis connection
// details live in the redis section.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Prefix  string        `mapstructure:"prefix"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server       ServerConfig            `mapstructure:"server"`
	Log          LogConfig               `mapstructure:"log"`
	Metrics      MetricsConfig           `mapstructure:"metrics"`
	Dataset      DatasetConfig           `mapstructure:"dataset"`
	MinIO        minio.MinIOConfig       `mapstructure:"minio"`
	Cache        CacheConfig             `mapstructure:"cache"`
	Redis        redis.RedisConfig       `mapstructure:"redis"`
	Vocabularies []vocabulary.Definition `mapstructure:"vocabularies"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxBodySize < 0 {
		return fmt.Errorf("config: server.max_body_size must be ≥ 0, got %d", c.Server.MaxBodySize)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}

	// Dataset
	if c.Dataset.Default == "" {
		return fmt.Errorf("config: dataset.default is required")
	}
	switch c.Dataset.Source {
	case storage.KindLocal:
	case storage.KindMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required when dataset.source is minio")
		}
	default:
		return fmt.Errorf("config: dataset.source %q is invalid; expected local|minio", c.Dataset.Source)
	}

	// Cache
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("config: cache.ttl must be positive when the cache is enabled")
		}
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	// Vocabularies
	seen := make(map[string]bool, len(c.Vocabularies))
	for i, d := range c.Vocabularies {
		if d.Name == "" {
			return fmt.Errorf("config: vocabularies[%d].name is required", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("config: vocabularies[%d].name %q is duplicated", i, d.Name)
		}
		seen[d.Name] = true
		if len(d.Nodes) == 0 {
			return fmt.Errorf("config: vocabularies[%d].nodes must not be empty", i)
		}
	}

	return nil
}

// Registry builds the vocabulary registry: the built-ins plus every
// configured vocabulary.  The default dataset must resolve.
func (c *Config) Registry() (*vocabulary.Registry, error) {
	r, err := vocabulary.FromConfig(c.Vocabularies)
	if err != nil {
		return nil, err
	}
	if _, err := r.Resolve(c.Dataset.Default); err != nil {
		return nil, err
	}
	return r, nil
}

//Personal.AI order the ending
