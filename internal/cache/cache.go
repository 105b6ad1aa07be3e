// Package cache provides the keyed stores used for carts, checkout handoffs,
// verification codes, catalog snapshots and request counters. Redis backs them
// in deployed environments; Memory backs local runs and tests.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a keyed byte store. A zero ttl means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Counter counts hits per key inside a fixed window that starts with the first hit.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}
