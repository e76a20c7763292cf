package testutil

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/craterhub/crater-api/internal/cache"
)

// SetupTestCache starts a miniredis server and returns a cache adapter bound
// to it. The server shuts down with the test.
func SetupTestCache(t *testing.T, namespace string, ttl time.Duration) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client, namespace, ttl), mr
}
