// Package cache defines where finished plans are kept between planning calls
// and how a plan is encoded for storage.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidKey       = errors.New("invalid cache key")
	ErrConnectionFailed = errors.New("cache connection failed")

	// ErrCorruptEntry reports a stored plan that cannot be decoded or that
	// refers to actions outside the list it is replayed against.
	ErrCorruptEntry = errors.New("corrupt cache entry")
)

// Cache is a byte store keyed by plan request fingerprint. A miss is
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, opts SetOptions) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// SetOptions tune a single write. A zero TTL falls back to the backend
// default, which for the in-memory cache means no expiry.
type SetOptions struct {
	TTL time.Duration
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits, Misses int64
	Evictions    int64
	Size         int64
	MaxSize      int64 // 0 when unbounded
}

// HitRate is Hits/(Hits+Misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	lookups := s.Hits + s.Misses
	if lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(lookups)
}

// StatsProvider is implemented by caches that count their traffic.
type StatsProvider interface {
	Stats() Stats
}
