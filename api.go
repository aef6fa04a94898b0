package colorwire

import (
	"context"
	"time"

	"github.com/unkn0wn-root/colorwire/codec"
	"github.com/unkn0wn-root/colorwire/color"
	gen "github.com/unkn0wn-root/colorwire/genstore"
	pr "github.com/unkn0wn-root/colorwire/provider"
)

// SetCostFunc reports the admission cost of a record for cost-aware providers.
type SetCostFunc func(key string, raw []byte, isBulk bool, bulkCount int) int64

// Palette is a provider-agnostic store of colors keyed by name, with
// compare-and-swap safety via per-key generations.
type Palette interface {
	Enabled() bool
	Close(context.Context) error

	// Single
	Get(ctx context.Context, key string) (c color.Color, ok bool, err error)
	SetWithGen(ctx context.Context, key string, c color.Color, observedGen uint64, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error

	// Bulk (order-agnostic return; use your own ordering by keys slice)
	GetBulk(ctx context.Context, keys []string) (colors map[string]color.Color, missing []string, err error)
	SetBulkWithGens(ctx context.Context, items map[string]color.Color, observedGens map[string]uint64, ttl time.Duration) error

	// Generation snapshots (for CAS)
	SnapshotGen(key string) uint64
	SnapshotGens(keys []string) map[string]uint64
}

// Options tune a Palette. Only Namespace and Provider are required.
type Options struct {
	Namespace string // e.g. "theme:prod"
	Provider  pr.Provider

	// Codec turns colors into record payloads. nil => codec.Color{}.
	// Wrap in codec.Limit to cap what a read will decode.
	Codec codec.Codec[color.Color]

	Logger          Logger        // nil => NopLogger
	Hooks           Hooks         // nil => NopHooks
	DefaultTTL      time.Duration // singles; 0 => 10m
	BulkTTL         time.Duration // bulks; 0 => 10m
	CleanupInterval time.Duration // local genstore sweep; 0 => 1h
	GenRetention    time.Duration // local genstore retention; 0 => 30d
	Disabled        bool
	ComputeSetCost  SetCostFunc  // nil => 1
	GenStore        gen.GenStore // nil => local in-process store
	DisableBulk     bool
}

func New(opts Options) (Palette, error) {
	return newPalette(opts)
}
