package cache

import (
	"context"
	"errors"
	"time"
)

// Store is a TTL-aware key-value store for session state and short-lived
// response caches. Expired and unparseable entries are reported as ErrMiss,
// never as a decode error.
type Store interface {
	Get(ctx context.Context, key string, v any) error
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var ErrMiss = errors.New("cache miss")
