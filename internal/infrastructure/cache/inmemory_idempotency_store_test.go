package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeClock is advanced by the tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newInMemoryStore(clock.Now, time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("first reservation wins", func(t *testing.T) {
		store, _ := newTestStore(t)

		ok, err := store.Reserve(ctx, "POST /api/v1/items|k1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(ctx, "POST /api/v1/items|k1", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired reservation is taken over", func(t *testing.T) {
		store, clock := newTestStore(t)

		ok, _ := store.Reserve(ctx, "k", time.Minute)
		require.True(t, ok)

		clock.Advance(time.Minute)
		ok, err := store.Reserve(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("released key can be reserved again", func(t *testing.T) {
		store, _ := newTestStore(t)

		ok, _ := store.Reserve(ctx, "k", time.Hour)
		require.True(t, ok)
		require.NoError(t, store.Release(ctx, "k"))

		ok, err := store.Reserve(ctx, "k", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("concurrent reservations admit exactly one", func(t *testing.T) {
		store, _ := newTestStore(t)

		var (
			wg  sync.WaitGroup
			won atomic.Int32
		)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := store.Reserve(ctx, "shared", time.Hour); ok {
					won.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), won.Load())
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Reserve(ctx, "short", time.Minute)
	_, _ = store.Reserve(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Size())

	clock.Advance(2 * time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("no redis address selects memory", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, Config{}, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, Config{RedisAddr: "127.0.0.1:1"}, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis is an error when required", func(t *testing.T) {
		_, err := NewIdempotencyStore(ctx, Config{RedisAddr: "127.0.0.1:1", RequireRedis: true}, zaptest.NewLogger(t))
		assert.Error(t, err)
	})
}
