// Package provider defines the byte store that palette records live in.
//
// Implementations MUST be byte-for-byte transparent: Get returns exactly
// the []byte previously passed to Set for a key. Palette records are
// strictly framed; any mutation reads back as corruption and the record
// is deleted.
//
// The keyspaces "single:<ns>:" and "bulk:<ns>:" are owned by the palette.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss;
	// (nil, false, err) on transport or backend failure.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL; ttl <= 0 means no expiry where
	// supported. cost may be ignored. ok=false means the write was
	// refused under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	Del(ctx context.Context, key string) error

	Close(ctx context.Context) error
}
