package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	zapobserver "go.uber.org/zap/zaptest/observer"
)

func newRedisTestStore(t *testing.T, prefix string) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisIdempotencyStoreWithClient(client, prefix)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisIdempotencyStore_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("first reservation wins", func(t *testing.T) {
		store, _ := newRedisTestStore(t, "")

		ok, err := store.Reserve(ctx, "create-1000", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(ctx, "create-1000", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys carry the prefix and ttl", func(t *testing.T) {
		store, mr := newRedisTestStore(t, "")

		_, err := store.Reserve(ctx, "create-1000", time.Minute)
		require.NoError(t, err)
		assert.True(t, mr.Exists(DefaultKeyPrefix+"create-1000"))
		assert.Equal(t, time.Minute, mr.TTL(DefaultKeyPrefix+"create-1000"))
	})

	t.Run("custom prefix", func(t *testing.T) {
		store, mr := newRedisTestStore(t, "test:")

		_, err := store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, mr.Exists("test:k"))
		assert.False(t, mr.Exists(DefaultKeyPrefix+"k"))
	})

	t.Run("expired reservation can be taken again", func(t *testing.T) {
		store, mr := newRedisTestStore(t, "")

		ok, err := store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		mr.FastForward(time.Minute + time.Second)

		ok, err = store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		store, mr := newRedisTestStore(t, "")
		mr.Close()

		ok, err := store.Reserve(ctx, "k", time.Minute)
		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "failed to reserve idempotency key")
	})
}

func TestRedisIdempotencyStore_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("released key can be reserved again", func(t *testing.T) {
		store, mr := newRedisTestStore(t, "")

		_, err := store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Release(ctx, "k"))
		assert.False(t, mr.Exists(DefaultKeyPrefix+"k"))

		ok, err := store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release of unknown key", func(t *testing.T) {
		store, _ := newRedisTestStore(t, "")
		assert.NoError(t, store.Release(ctx, "never-reserved"))
	})

	t.Run("unreachable redis", func(t *testing.T) {
		store, mr := newRedisTestStore(t, "")
		mr.Close()

		err := store.Release(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to release idempotency key")
	})
}

func TestNewIdempotencyStore_Redis(t *testing.T) {
	ctx := context.Background()

	t.Run("reachable redis is used", func(t *testing.T) {
		mr := miniredis.RunT(t)

		store, err := NewIdempotencyStore(ctx, Config{RedisAddr: mr.Addr(), KeyPrefix: "test:"}, zap.NewNop())
		require.NoError(t, err)
		defer store.Close()
		require.IsType(t, &RedisIdempotencyStore{}, store)

		ok, err := store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, mr.Exists("test:k"))
	})

	t.Run("fallback is logged", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		core, logs := zapobserver.New(zapcore.WarnLevel)
		store, err := NewIdempotencyStore(ctx, Config{RedisAddr: addr}, zap.New(core))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
		assert.Equal(t, 1, logs.FilterMessageSnippet("falling back to in-memory").Len())
	})
}
