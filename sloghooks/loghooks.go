// Package sloghooks reports palette events through log/slog with sampling
// for the noisy ones and redacted storage keys.
//
// Self-heals are split by cause: "stale" (generation moved on, routine),
// "frame" (record framing or payload size) and "color" (the payload held
// non-canonical color bytes). Frame and color heals log at Warn since they
// point at a writer using a different codec or a damaged store.
package sloghooks

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/unkn0wn-root/colorwire"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery   uint64
	BulkRejectEvery uint64
	// Optional key redactor. Defaults to a 16-hex xxhash.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr   atomic.Uint64
	bulkRejectCtr atomic.Uint64

	mu    sync.Mutex
	heals map[string]uint64 // by reason, before sampling
}

var _ colorwire.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts, heals: make(map[string]uint64)}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(k))
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n <= 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

// HealCause classifies a SelfHealSingle reason.
func HealCause(reason string) string {
	switch reason {
	case colorwire.HealGenMismatch:
		return "stale"
	case colorwire.HealCorrupt, colorwire.HealTooLarge:
		return "frame"
	case colorwire.HealWrongLength, colorwire.HealUnknownDiscriminant,
		colorwire.HealMalformedPadding, colorwire.HealInvalidNamedColor:
		return "color"
	default:
		return "unknown"
	}
}

// SelfHeals returns a copy of the self-heal counts by reason.
func (h *Hooks) SelfHeals() map[string]uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return maps.Clone(h.heals)
}

func (h *Hooks) SelfHealSingle(storageKey, reason string) {
	h.mu.Lock()
	h.heals[reason]++
	h.mu.Unlock()

	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	cause := HealCause(reason)
	level := slog.LevelWarn
	if cause == "stale" {
		level = slog.LevelDebug
	}
	h.l.Log(context.Background(), level, "colorwire.self_heal_single",
		"key", h.redact(storageKey),
		"reason", reason,
		"cause", cause)
}

func (h *Hooks) BulkRejected(ns string, requested int, reason string) {
	if h.l == nil || !sample(h.opts.BulkRejectEvery, &h.bulkRejectCtr) {
		return
	}
	h.l.Info("colorwire.bulk_rejected",
		"ns", ns,
		"requested", requested,
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(storageKey string, isBulk bool) {
	if h.l == nil {
		return
	}
	h.l.Warn("colorwire.provider_set_rejected",
		"key", h.redact(storageKey),
		"is_bulk", isBulk)
}

func (h *Hooks) GenSnapshotError(count int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("colorwire.gen_snapshot_error",
		"count", count,
		"err", err)
}

func (h *Hooks) GenBumpError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("colorwire.gen_bump_error",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) InvalidateOutage(key string, bumpErr, delErr error) {
	if h.l == nil {
		return
	}
	h.l.Error("colorwire.invalidate_outage",
		"key", h.redact(key),
		"bump_err", bumpErr,
		"del_err", delErr)
}

func (h *Hooks) LocalGenWithBulk() {
	if h.l == nil {
		return
	}
	h.l.Warn("colorwire.local_gen_with_bulk",
		"detail", "bulk enabled with local genstore; stale bulks possible across replicas")
}
