package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/craterhub/crater-api/internal/config"
)

// ErrUnavailable marks connection or protocol failures talking to the cache
// tier, so callers can tell an outage apart from a durable-tier error.
var ErrUnavailable = errors.New("cache unavailable")

// Cache is the adapter over the shared key-value tier. Keys are namespaced
// per entity kind so multiple kinds and environments can share one Redis.
// It offers no ordering or transactional guarantees; staleness is bounded
// only by the entry TTL.
type Cache struct {
	rdb       *redis.Client
	namespace string
	ttl       time.Duration
}

// New wraps an existing client. Used directly by tests (miniredis) and by
// Connect for production wiring.
func New(client *redis.Client, namespace string, ttl time.Duration) *Cache {
	return &Cache{
		rdb:       client,
		namespace: namespace,
		ttl:       ttl,
	}
}

// Connect opens a Redis client and pings it before handing it out.
func Connect(ctx context.Context, redisCfg config.RedisConfig, cacheCfg config.CacheConfig, log *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("connected to redis",
		zap.String("addr", redisCfg.Addr),
		zap.String("namespace", cacheCfg.Namespace),
		zap.Duration("ttl", cacheCfg.TTL))

	return New(client, cacheCfg.Namespace, cacheCfg.TTL), nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Key builds the namespaced cache key for an entity id.
func (c *Cache) Key(id string) string {
	return c.namespace + ":" + id
}

// GetMany fetches snapshots for the given keys in one MGET. The result has
// one slot per requested key, nil where the key is absent. An empty key set
// returns without touching the network.
func (c *Cache) GetMany(ctx context.Context, keys []string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: mget: %v", ErrUnavailable, err)
	}

	out := make([]*string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[i] = &s
		}
	}
	return out, nil
}

// Set stores a snapshot under key with the configured TTL, overwriting
// whatever is there.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrUnavailable, key, err)
	}
	return nil
}
