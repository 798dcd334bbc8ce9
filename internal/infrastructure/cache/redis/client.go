// Package redis caches reconstruction results in Redis.  The cache is an
// optimisation only: every lookup failure degrades to recomputation.
package redis

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
)

// Deployment modes.
const (
	ModeStandalone = "standalone"
	ModeSentinel   = "sentinel"
	ModeCluster    = "cluster"
)

// RedisConfig configures the connection.
type RedisConfig struct {
	Mode          string        `mapstructure:"mode"`
	Addr          string        `mapstructure:"addr"`
	MasterName    string        `mapstructure:"master_name"`
	SentinelAddrs []string      `mapstructure:"sentinel_addrs"`
	ClusterAddrs  []string      `mapstructure:"cluster_addrs"`
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	PoolSize      int           `mapstructure:"pool_size"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

// Validate checks that the addresses required by Mode are present.
func (c RedisConfig) Validate() error {
	switch c.Mode {
	case ModeStandalone, "":
		if c.Addr == "" {
			return errors.InvalidParam("redis.addr is required")
		}
	case ModeSentinel:
		if c.MasterName == "" || len(c.SentinelAddrs) == 0 {
			return errors.InvalidParam("redis.master_name and redis.sentinel_addrs are required in sentinel mode")
		}
	case ModeCluster:
		if len(c.ClusterAddrs) == 0 {
			return errors.InvalidParam("redis.cluster_addrs is required in cluster mode")
		}
	default:
		return errors.InvalidParam("invalid redis mode").WithDetailf("mode=%s", c.Mode)
	}
	return nil
}

func applyDefaults(cfg *RedisConfig) {
	if cfg.Mode == "" {
		cfg.Mode = ModeStandalone
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10 * runtime.GOMAXPROCS(0)
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
}

// Client wraps a go-redis universal client.
type Client struct {
	rdb    redis.UniversalClient
	mode   string
	logger logging.Logger
}

// NewClient connects and pings Redis.  An unreachable server fails with
// ErrCodeServiceUnavailable.
func NewClient(cfg *RedisConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	var rdb redis.UniversalClient
	switch cfg.Mode {
	case ModeCluster:
		rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.ClusterAddrs,
			Username:     cfg.Username,
			Password:     cfg.Password,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			MaxRetries:   cfg.MaxRetries,
		})
	case ModeSentinel:
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.MasterName,
			SentinelAddrs: cfg.SentinelAddrs,
			Username:      cfg.Username,
			Password:      cfg.Password,
			DB:            cfg.DB,
			PoolSize:      cfg.PoolSize,
			DialTimeout:   cfg.DialTimeout,
			ReadTimeout:   cfg.ReadTimeout,
			WriteTimeout:  cfg.WriteTimeout,
			MaxRetries:    cfg.MaxRetries,
		})
	default:
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Username:     cfg.Username,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			MaxRetries:   cfg.MaxRetries,
		})
	}

	c := &Client{rdb: rdb, mode: cfg.Mode, logger: logger.Named("redis")}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	c.logger.Info("redis client connected",
		logging.String("mode", cfg.Mode),
		logging.String("addr", cfg.Addr),
	)
	return c, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "redis ping failed")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// HealthCheck implements storage.HealthChecker.  An unreachable cache
// degrades the service rather than taking it down.
func (c *Client) HealthCheck(ctx context.Context) common.ComponentHealth {
	h := common.ComponentHealth{Name: "cache.redis", Status: common.HealthUp}
	if err := c.Ping(ctx); err != nil {
		h.Status = common.HealthDegraded
		h.Message = err.Error()
	}
	return h
}

//Personal.AI order the ending
