// Package genstore keeps the per-key generation counters that make palette
// writes compare-and-swap safe.
package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where generations live.
// Missing keys always read as generation 0.
type GenStore interface {
	Snapshot(ctx context.Context, storageKey string) (uint64, error)
	SnapshotMany(ctx context.Context, storageKeys []string) (map[string]uint64, error)
	// Bump atomically increments and returns the new generation.
	Bump(ctx context.Context, storageKey string) (uint64, error)
	// Cleanup prunes metadata older than retention. No-op for stores
	// that expire keys themselves.
	Cleanup(retention time.Duration)
	Close(context.Context) error
}
