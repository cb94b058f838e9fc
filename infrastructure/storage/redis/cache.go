package redis

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/goap-go/domain/cache"
)

// scanCount is the SCAN COUNT hint used by Clear.
const scanCount = 100

// Cache keeps encoded plans in Redis under a key prefix.
type Cache struct {
	client     redis.UniversalClient
	keyPrefix  string
	defaultTTL time.Duration

	hits, misses atomic.Int64
}

// NewCache dials Redis and fails with cache.ErrConnectionFailed when the
// server does not answer PING within cfg.DialTimeout.
func NewCache(ctx context.Context, cfg Config, opts ...ConfigOption) (*Cache, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(cache.ErrConnectionFailed, err)
	}

	c := NewCacheFromClient(client, cfg.KeyPrefix)
	c.defaultTTL = cfg.DefaultTTL
	return c, nil
}

// NewCacheFromClient wraps an existing client, e.g. a cluster or sentinel
// client. Writes without a TTL never expire.
func NewCacheFromClient(client redis.UniversalClient, keyPrefix string) *Cache {
	return &Cache{client: client, keyPrefix: keyPrefix}
}

func (c *Cache) prefixKey(key string) string { return c.keyPrefix + key }

func (c *Cache) ttl(opts cache.SetOptions) time.Duration {
	if opts.TTL > 0 {
		return opts.TTL
	}
	return c.defaultTTL
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, c.prefixKey(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.misses.Add(1)
		return nil, false, nil
	case err != nil:
		return nil, false, wrapError(err)
	}
	c.hits.Add(1)
	return data, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return cache.ErrInvalidKey
	}
	return wrapError(c.client.Set(ctx, c.prefixKey(key), value, c.ttl(opts)).Err())
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrapError(c.client.Del(ctx, c.prefixKey(key)).Err())
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := c.client.Exists(ctx, c.prefixKey(key)).Result()
	return n > 0, wrapError(err)
}

// Clear unlinks every key under the prefix, one SCAN page at a time. With an
// empty prefix this empties the whole database.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanCount).Result()
		if err != nil {
			return wrapError(err)
		}
		if len(keys) > 0 {
			if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
				return wrapError(err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Stats reports lookups made through this instance. Size is not tracked.
func (c *Cache) Stats() cache.Stats {
	return cache.Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *Cache) Ping(ctx context.Context) error {
	return wrapError(c.client.Ping(ctx).Err())
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// wrapError tags network failures with cache.ErrConnectionFailed and passes
// other errors through untouched.
func wrapError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) {
		return errors.Join(cache.ErrConnectionFailed, err)
	}
	return err
}

var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
