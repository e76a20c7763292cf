package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, "collections", 30*time.Minute), mr
}

func TestCache_Key(t *testing.T) {
	c, _ := setupCache(t)

	assert.Equal(t, "collections:abc-123", c.Key("abc-123"))
}

func TestCache_GetMany_EmptyKeys(t *testing.T) {
	c, mr := setupCache(t)

	// close the backend first: an empty key set must not touch the network
	mr.Close()

	values, err := c.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, values)
}

func TestCache_GetMany_MixedHitsAndMisses(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("collections:a", "snapshot-a"))
	require.NoError(t, mr.Set("collections:c", "snapshot-c"))

	values, err := c.GetMany(ctx, []string{"collections:a", "collections:b", "collections:c"})

	require.NoError(t, err)
	require.Len(t, values, 3)
	require.NotNil(t, values[0])
	assert.Equal(t, "snapshot-a", *values[0])
	assert.Nil(t, values[1])
	require.NotNil(t, values[2])
	assert.Equal(t, "snapshot-c", *values[2])
}

func TestCache_Set_AppliesTTL(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "collections:x", "snapshot"))

	got, err := mr.Get("collections:x")
	require.NoError(t, err)
	assert.Equal(t, "snapshot", got)
	assert.Equal(t, 30*time.Minute, mr.TTL("collections:x"))
}

func TestCache_Set_Overwrites(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "collections:x", "old"))
	mr.FastForward(10 * time.Minute)
	require.NoError(t, c.Set(ctx, "collections:x", "new"))

	got, err := mr.Get("collections:x")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
	// overwriting resets the TTL
	assert.Equal(t, 30*time.Minute, mr.TTL("collections:x"))
}

func TestCache_Delete_Idempotent(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "collections:x", "snapshot"))
	require.NoError(t, c.Delete(ctx, "collections:x"))
	assert.False(t, mr.Exists("collections:x"))

	// deleting again is still fine
	require.NoError(t, c.Delete(ctx, "collections:x"))
}

func TestCache_ErrorsAreUnavailable(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	mr.Close()

	_, err := c.GetMany(ctx, []string{"collections:x"})
	assert.ErrorIs(t, err, ErrUnavailable)

	err = c.Set(ctx, "collections:x", "snapshot")
	assert.ErrorIs(t, err, ErrUnavailable)

	err = c.Delete(ctx, "collections:x")
	assert.ErrorIs(t, err, ErrUnavailable)
}
