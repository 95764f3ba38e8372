package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/bcadapter/internal/domain/shared"
	"go.uber.org/zap"
)

// Config selects and configures the idempotency store. An empty RedisAddr
// selects the in-memory store.
type Config struct {
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	// RequireRedis turns an unreachable Redis into an error instead of an
	// in-memory fallback
	RequireRedis bool
}

// NewIdempotencyStore creates the store described by cfg
func NewIdempotencyStore(ctx context.Context, cfg Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RedisAddr == "" {
		logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	if err == nil {
		logger.Info("Using Redis idempotency store", zap.String("addr", cfg.RedisAddr))
		return store, nil
	}
	if cfg.RequireRedis {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	logger.Warn("Redis unavailable, falling back to in-memory idempotency store. "+
		"Retried creates may reach Business Central twice when several instances run.",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(), nil
}
