package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/erp/bcadapter/internal/infrastructure/cache"
	"github.com/erp/bcadapter/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore rejects every call
type failingStore struct{}

func (failingStore) Reserve(context.Context, string, time.Duration) (bool, error) {
	return false, assert.AnError
}
func (failingStore) Release(context.Context, string) error { return assert.AnError }
func (failingStore) Close() error                          { return nil }

func newIdempotentRouter(store shared.IdempotencyStore, status *int, calls *int) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Idempotency(store, shared.IdempotencyConfig{Enabled: true, TTL: time.Hour}))
	handle := func(c *gin.Context) {
		*calls++
		c.Status(*status)
	}
	r.POST("/api/v1/items", handle)
	r.POST("/api/v1/documents", handle)
	r.GET("/api/v1/items", handle)
	return r
}

func send(r *gin.Engine, method, target, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("replayed key is rejected", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		r := newIdempotentRouter(store, &status, &calls)

		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/items", "k1").Code)

		w := send(r, http.MethodPost, "/api/v1/items", "k1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeDuplicateRequest)
		assert.Equal(t, 1, calls)
	})

	t.Run("keys are scoped by route", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		r := newIdempotentRouter(store, &status, &calls)

		send(r, http.MethodPost, "/api/v1/items", "k1")
		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/documents", "k1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("failed request frees the key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		status, calls := http.StatusServiceUnavailable, 0
		r := newIdempotentRouter(store, &status, &calls)

		assert.Equal(t, http.StatusServiceUnavailable, send(r, http.MethodPost, "/api/v1/items", "k1").Code)
		status = http.StatusCreated
		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/items", "k1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("requests without key or not POST pass", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		status, calls := http.StatusOK, 0
		r := newIdempotentRouter(store, &status, &calls)

		send(r, http.MethodPost, "/api/v1/items", "")
		send(r, http.MethodPost, "/api/v1/items", "")
		send(r, http.MethodGet, "/api/v1/items", "k1")
		send(r, http.MethodGet, "/api/v1/items", "k1")
		assert.Equal(t, 4, calls)
		assert.Equal(t, 0, store.Size())
	})

	t.Run("overlong key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		r := newIdempotentRouter(store, &status, &calls)

		long := make([]byte, MaxIdempotencyKeyLength+1)
		for i := range long {
			long[i] = 'k'
		}
		w := send(r, http.MethodPost, "/api/v1/items", string(long))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		r := newIdempotentRouter(failingStore{}, &status, &calls)

		require.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/items", "k1").Code)
		require.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/items", "k1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("disabled", func(t *testing.T) {
		r := gin.New()
		r.Use(Idempotency(failingStore{}, shared.IdempotencyConfig{Enabled: false}))
		r.POST("/x", func(c *gin.Context) { c.Status(http.StatusCreated) })
		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/x", "k").Code)
	})
}
