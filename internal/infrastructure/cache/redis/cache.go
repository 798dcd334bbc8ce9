package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
)

// Cache defaults.
const (
	DefaultPrefix = "molgraph:"
	DefaultTTL    = time.Hour
)

var (
	// ErrCacheMiss reports an absent key.
	ErrCacheMiss = errors.NotFound("cache miss")

	// ErrCacheUnavailable reports a Redis failure.
	ErrCacheUnavailable = errors.New(errors.ErrCodeServiceUnavailable, "cache unavailable")
)

// Cache stores JSON values under a key prefix.  Concurrent loads of one key
// are collapsed into a single call.
type Cache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// CacheOption customises NewCache.
type CacheOption func(*Cache)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) CacheOption {
	return func(c *Cache) { c.prefix = prefix }
}

// WithTTL sets the expiry of stored values.  Zero keeps values forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// NewCache returns a Cache over client.
func NewCache(client *Client, logger logging.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &Cache{
		client: client,
		logger: logger.Named("cache"),
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) fullKey(key string) string {
	return c.prefix + key
}

// jitter spreads expiries by ±10% so keys written together do not expire
// together.
func (c *Cache) jitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	return c.ttl + time.Duration(float64(c.ttl)*0.1*(rand.Float64()*2-1))
}

// Get decodes the value stored under key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return ErrCacheUnavailable.WithCause(err).WithDetailf("op=get key=%s", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cached value is corrupt").WithDetailf("key=%s", key)
	}
	return nil
}

// Set stores value under key as JSON.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode cache value").WithDetailf("key=%s", key)
	}
	if err := c.client.rdb.Set(ctx, c.fullKey(key), data, c.jitter()).Err(); err != nil {
		return ErrCacheUnavailable.WithCause(err).WithDetailf("op=set key=%s", key)
	}
	return nil
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.rdb.Del(ctx, full...).Err(); err != nil {
		return ErrCacheUnavailable.WithCause(err).WithDetail("op=del")
	}
	return nil
}

// GetOrLoad fills dest from the cache, or calls load on a miss and stores its
// result.  Loader errors are returned unchanged and nothing is stored.  When
// Redis itself fails the loader still runs and its value is returned.
func (c *Cache) GetOrLoad(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	switch {
	case err == nil:
		return nil
	case errors.IsCode(err, errors.ErrCodeServiceUnavailable), errors.IsCode(err, errors.ErrCodeSerialization):
		c.logger.WithContext(ctx).WithError(err).Warn("cache lookup failed; loading directly")
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if setErr := c.Set(ctx, key, v); setErr != nil {
			c.logger.WithContext(ctx).WithError(setErr).Warn("cache store failed")
		}
		return v, nil
	})
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode loaded value")
	}
	return json.Unmarshal(data, dest)
}

//Personal.AI order the ending
