package config

import (
	"time"

	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/internal/infrastructure/cache/redis"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerMaxBodySize     = 8 << 20
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "molgraph"
	DefaultMetricsPath      = "/metrics"

	DefaultDataset       = vocabulary.PTCFM
	DefaultDatasetSource = storage.KindLocal
	DefaultDatasetRoot   = "./data"

	DefaultCacheTTL    = redis.DefaultTTL
	DefaultCachePrefix = redis.DefaultPrefix
	DefaultRedisMode   = redis.ModeStandalone
	DefaultRedisAddr   = "localhost:6379"
)

// defaultKeys lists every scalar key with its default.  Loader registers them
// with viper so that MOLGRAPH_* variables resolve even without a config file.
var defaultKeys = map[string]interface{}{
	"server.host":             DefaultServerHost,
	"server.port":             DefaultServerPort,
	"server.mode":             DefaultServerMode,
	"server.read_timeout":     DefaultServerReadTimeout,
	"server.write_timeout":    DefaultServerWriteTimeout,
	"server.max_body_size":    DefaultServerMaxBodySize,
	"server.shutdown_timeout": DefaultServerShutdownTimeout,
	"server.cors_origins":     []string{},

	"log.level":  DefaultLogLevel,
	"log.format": DefaultLogFormat,

	"metrics.enabled":                true,
	"metrics.namespace":              DefaultMetricsNamespace,
	"metrics.path":                   DefaultMetricsPath,
	"metrics.enable_process_metrics": false,
	"metrics.enable_go_metrics":      false,

	"dataset.default": DefaultDataset,
	"dataset.source":  DefaultDatasetSource,
	"dataset.root":    DefaultDatasetRoot,

	"minio.endpoint":          "",
	"minio.access_key_id":     "",
	"minio.secret_access_key": "",
	"minio.use_ssl":           false,
	"minio.region":            "",
	"minio.bucket":            "",
	"minio.prefix":            "",
	"minio.create_bucket":     false,
	"minio.connect_timeout":   time.Duration(0),

	"cache.enabled": false,
	"cache.ttl":     DefaultCacheTTL,
	"cache.prefix":  DefaultCachePrefix,

	"redis.mode":           DefaultRedisMode,
	"redis.addr":           DefaultRedisAddr,
	"redis.master_name":    "",
	"redis.sentinel_addrs": []string{},
	"redis.cluster_addrs":  []string{},
	"redis.username":       "",
	"redis.password":       "",
	"redis.db":             0,
	"redis.pool_size":      0,
	"redis.dial_timeout":   time.Duration(0),
	"redis.read_timeout":   time.Duration(0),
	"redis.write_timeout":  time.Duration(0),
	"redis.max_retries":    0,
}

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// already set are left unchanged so that explicit configuration always wins.
// MinIO and Redis pool defaults are applied by their packages when they
// connect.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Dataset ───────────────────────────────────────────────────────────────
	if cfg.Dataset.Default == "" {
		cfg.Dataset.Default = DefaultDataset
	}
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = DefaultDatasetSource
	}
	if cfg.Dataset.Root == "" {
		cfg.Dataset.Root = DefaultDatasetRoot
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = DefaultCachePrefix
	}
	if cfg.Redis.Mode == "" {
		cfg.Redis.Mode = DefaultRedisMode
	}
	if cfg.Redis.Addr == "" && cfg.Redis.Mode == redis.ModeStandalone {
		cfg.Redis.Addr = DefaultRedisAddr
	}
}

//Personal.AI order the ending
