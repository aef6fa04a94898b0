package colorwire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/colorwire/codec"
	"github.com/unkn0wn-root/colorwire/color"
	gen "github.com/unkn0wn-root/colorwire/genstore"
	"github.com/unkn0wn-root/colorwire/internal/util"
	"github.com/unkn0wn-root/colorwire/internal/wire"
	pr "github.com/unkn0wn-root/colorwire/provider"
)

type palette struct {
	ns             string
	provider       pr.Provider
	codec          codec.Codec[color.Color]
	log            Logger
	hooks          Hooks
	enabled        bool
	bulkEnabled    bool
	defaultTTL     time.Duration
	bulkTTL        time.Duration
	computeSetCost SetCostFunc
	gen            gen.GenStore
}

func newPalette(opts Options) (*palette, error) {
	if opts.Provider == nil {
		return nil, errors.New("colorwire: provider is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("colorwire: namespace is required")
	}

	p := &palette{
		ns:          opts.Namespace,
		provider:    opts.Provider,
		enabled:     !opts.Disabled,
		bulkEnabled: !opts.DisableBulk,
	}

	p.codec = coalesce[codec.Codec[color.Color]](opts.Codec, codec.Color{})
	p.log = coalesce[Logger](opts.Logger, NopLogger{})
	p.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	p.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)
	p.bulkTTL = coalesce(opts.BulkTTL, defaultTTL)

	p.computeSetCost = opts.ComputeSetCost
	if p.computeSetCost == nil {
		p.computeSetCost = func(string, []byte, bool, int) int64 { return 1 }
	}

	if opts.GenStore != nil {
		p.gen = opts.GenStore
	} else {
		p.gen = gen.NewLocalGenStore(gen.LocalOptions{
			CleanupInterval: coalesce(opts.CleanupInterval, defaultSweep),
			Retention:       coalesce(opts.GenRetention, defaultGenRetention),
		})
		if p.enabled && p.bulkEnabled {
			p.hooks.LocalGenWithBulk()
			p.log.Warn("bulk enabled with local genstore; stale bulks possible across replicas",
				Fields{"ns": p.ns})
		}
	}
	return p, nil
}

func (p *palette) Enabled() bool { return p.enabled }

func (p *palette) Close(ctx context.Context) error {
	// best effort; the provider error is the one callers care about
	if err := p.gen.Close(ctx); err != nil {
		p.log.Warn("genstore close failed", Fields{"err": err})
	}
	return p.provider.Close(ctx)
}

func (p *palette) Get(ctx context.Context, key string) (color.Color, bool, error) {
	if !p.enabled {
		return color.Color{}, false, nil
	}
	k := p.singleKey(key)
	raw, ok, err := p.provider.Get(ctx, k)
	if err != nil || !ok {
		return color.Color{}, false, err
	}
	g, payload, err := wire.DecodeSingle(raw)
	if err != nil {
		p.selfHeal(ctx, k, HealCorrupt)
		return color.Color{}, false, nil
	}
	c, err := p.codec.Decode(payload)
	if err != nil {
		p.selfHeal(ctx, k, healReason(err))
		return color.Color{}, false, nil
	}
	cur, err := p.snapshotGen(ctx, k)
	if err != nil {
		// can't prove freshness; leave the record for a later read
		return color.Color{}, false, nil
	}
	if g != cur {
		p.selfHeal(ctx, k, HealGenMismatch)
		return color.Color{}, false, nil
	}
	return c, true, nil
}

func (p *palette) SetWithGen(ctx context.Context, key string, c color.Color, observedGen uint64, ttl time.Duration) error {
	if !p.enabled {
		return nil
	}
	if ttl == 0 {
		ttl = p.defaultTTL
	}
	k := p.singleKey(key)
	cur, err := p.snapshotGen(ctx, k)
	if err != nil || cur != observedGen {
		p.log.Debug("SetWithGen skipped (gen mismatch)", Fields{"key": key, "obs": observedGen, "cur": cur})
		return nil
	}
	payload, err := p.codec.Encode(c)
	if err != nil {
		return fmt.Errorf("colorwire: encode %q: %w", key, err)
	}
	rec := wire.EncodeSingle(observedGen, payload)
	ok, err := p.provider.Set(ctx, k, rec, p.computeSetCost(k, rec, false, 1), ttl)
	if err != nil {
		return err
	}
	if !ok {
		p.hooks.ProviderSetRejected(k, false)
		p.log.Debug("SetWithGen rejected by provider (pressure)", Fields{"key": key})
	}
	return nil
}

// Invalidate bumps the generation and deletes the single record. Either
// step alone is enough to stop serving the old color, so an error is
// returned only when both fail.
func (p *palette) Invalidate(ctx context.Context, key string) error {
	if !p.enabled {
		return nil
	}
	k := p.singleKey(key)
	newGen, bumpErr := p.bumpGen(ctx, k)
	delErr := p.provider.Del(ctx, k)

	switch {
	case bumpErr != nil && delErr != nil:
		p.hooks.InvalidateOutage(key, bumpErr, delErr)
		p.log.Error("invalidate failed", Fields{"key": key, "bumpErr": bumpErr, "delErr": delErr})
		return &InvalidateError{Key: key, BumpErr: bumpErr, DelErr: delErr}
	case bumpErr != nil:
		p.log.Warn("invalidate: gen bump failed; record deleted", Fields{"key": key, "err": bumpErr})
	case delErr != nil:
		p.log.Warn("invalidate: delete failed; gen bumped", Fields{"key": key, "err": delErr, "newGen": newGen})
	default:
		p.log.Debug("invalidated key", Fields{"key": key, "newGen": newGen})
	}
	return nil
}

func (p *palette) GetBulk(ctx context.Context, keys []string) (map[string]color.Color, []string, error) {
	out := make(map[string]color.Color, len(keys))
	if !p.enabled {
		return out, append([]string(nil), keys...), nil
	}
	if len(keys) == 0 {
		return out, nil, nil
	}

	if p.bulkEnabled {
		sorted := util.UniqSorted(keys)
		if missing, hit := p.readBulk(ctx, sorted, out); hit {
			return out, missing, nil
		}
	}

	var missing []string
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		c, ok, err := p.Get(ctx, k)
		if err != nil {
			return out, nil, err
		}
		if ok {
			out[k] = c
		} else {
			missing = append(missing, k)
		}
	}
	return out, missing, nil
}

// readBulk serves keys from the bulk record for sorted. hit=false means
// the caller must fall back to singles.
func (p *palette) readBulk(ctx context.Context, sorted []string, out map[string]color.Color) (missing []string, hit bool) {
	bk := p.bulkKeySorted(sorted)
	raw, ok, err := p.provider.Get(ctx, bk)
	if err != nil || !ok {
		return nil, false
	}
	items, err := wire.DecodeBulk(raw)
	if err != nil {
		p.hooks.BulkRejected(p.ns, len(sorted), "decode_error")
		_ = p.provider.Del(ctx, bk)
		return nil, false
	}
	valid, err := p.bulkValid(ctx, sorted, items)
	if err != nil {
		p.hooks.BulkRejected(p.ns, len(sorted), "snapshot_error")
		return nil, false
	}
	if !valid {
		p.hooks.BulkRejected(p.ns, len(sorted), "invalid_or_stale")
		_ = p.provider.Del(ctx, bk)
		return nil, false
	}

	byKey := make(map[string]wire.BulkItem, len(items))
	for _, it := range items {
		byKey[it.Key] = it
	}
	// decode every requested member before serving any of them
	colors := make(map[string]color.Color, len(sorted))
	for _, k := range sorted {
		c, err := p.codec.Decode(byKey[k].Payload)
		if err != nil {
			p.hooks.BulkRejected(p.ns, len(sorted), "decode_error")
			p.log.Debug("bulk member decode failed", Fields{"key": k, "reason": healReason(err)})
			_ = p.provider.Del(ctx, bk)
			return nil, false
		}
		colors[k] = c
	}
	for _, k := range sorted {
		out[k] = colors[k]
		// opportunistic single warmup (CAS-protected)
		_ = p.SetWithGen(ctx, k, colors[k], byKey[k].Gen, p.defaultTTL)
	}
	return nil, true
}

func (p *palette) SetBulkWithGens(ctx context.Context, items map[string]color.Color, observedGens map[string]uint64, ttl time.Duration) error {
	if !p.enabled || len(items) == 0 {
		return nil
	}
	if ttl == 0 {
		ttl = p.bulkTTL
	}
	if !p.bulkEnabled {
		return p.seedSingles(ctx, items, observedGens)
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	keys = util.UniqSorted(keys)
	for _, k := range keys {
		if !wire.ValidKey(k) {
			p.log.Debug("SetBulkWithGens: key cannot be framed in a bulk; seeding singles", Fields{"keyLen": len(k)})
			return p.seedSingles(ctx, items, observedGens)
		}
	}

	storage := make([]string, len(keys))
	for i, k := range keys {
		storage[i] = p.singleKey(k)
	}
	cur, err := p.gen.SnapshotMany(ctx, storage)
	if err != nil {
		p.hooks.GenSnapshotError(len(storage), err)
		return p.seedSingles(ctx, items, observedGens)
	}
	for i, k := range keys {
		obs, ok := observedGens[k]
		if !ok || cur[storage[i]] != obs {
			p.log.Debug("SetBulkWithGens skipped (gen mismatch)", Fields{"key": k})
			return p.seedSingles(ctx, items, observedGens)
		}
	}

	wireItems := make([]wire.BulkItem, len(keys))
	for i, k := range keys {
		payload, err := p.codec.Encode(items[k])
		if err != nil {
			// SetWithGen reports the failing member; the rest still land
			return p.seedSingles(ctx, items, observedGens)
		}
		wireItems[i] = wire.BulkItem{Key: k, Gen: observedGens[k], Payload: payload}
	}
	rec, err := wire.EncodeBulk(wireItems)
	if err != nil {
		return errors.Join(err, p.seedSingles(ctx, items, observedGens))
	}
	bk := p.bulkKeySorted(keys)
	ok, err := p.provider.Set(ctx, bk, rec, p.computeSetCost(bk, rec, true, len(keys)), ttl)
	if err != nil {
		return err
	}
	if !ok {
		p.hooks.ProviderSetRejected(bk, true)
		p.log.Debug("bulk Set rejected; seeding singles", Fields{"bulkKey": bk})
	}
	return p.seedSingles(ctx, items, observedGens)
}

// seedSingles writes each item whose generation was observed. Stale
// items are skipped by SetWithGen itself.
func (p *palette) seedSingles(ctx context.Context, items map[string]color.Color, observedGens map[string]uint64) error {
	var errs []error
	for k, c := range items {
		obs, ok := observedGens[k]
		if !ok {
			continue
		}
		if err := p.SetWithGen(ctx, k, c, obs, p.defaultTTL); err != nil {
			errs = append(errs, fmt.Errorf("seed %q: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func (p *palette) SnapshotGen(key string) uint64 {
	g, _ := p.snapshotGen(context.Background(), p.singleKey(key))
	return g
}

func (p *palette) SnapshotGens(keys []string) map[string]uint64 {
	out := make(map[string]uint64, len(keys))
	if len(keys) == 0 {
		return out
	}
	storage := make([]string, len(keys))
	for i, k := range keys {
		storage[i] = p.singleKey(k)
	}
	m, err := p.gen.SnapshotMany(context.Background(), storage)
	if err != nil {
		p.hooks.GenSnapshotError(len(storage), err)
		// conservative fallback: one by one
		for _, k := range keys {
			out[k] = p.SnapshotGen(k)
		}
		return out
	}
	for i, k := range keys {
		out[k] = m[storage[i]]
	}
	return out
}

// snapshotGen reports 0 alongside any error so CAS writes skip.
func (p *palette) snapshotGen(ctx context.Context, storageKey string) (uint64, error) {
	g, err := p.gen.Snapshot(ctx, storageKey)
	if err != nil {
		p.hooks.GenSnapshotError(1, err)
		p.log.Warn("gen snapshot error", Fields{"key": storageKey, "err": err})
		return 0, err
	}
	return g, nil
}

func (p *palette) bumpGen(ctx context.Context, storageKey string) (uint64, error) {
	g, err := p.gen.Bump(ctx, storageKey)
	if err != nil {
		p.hooks.GenBumpError(storageKey, err)
		return 0, err
	}
	return g, nil
}

func (p *palette) selfHeal(ctx context.Context, storageKey, reason string) {
	_ = p.provider.Del(ctx, storageKey)
	p.hooks.SelfHealSingle(storageKey, reason)
	p.log.Debug("self-healed single", Fields{"key": storageKey, "reason": reason})
}

func (p *palette) singleKey(userKey string) string {
	return "single:" + p.ns + ":" + userKey
}

// bulkKeySorted expects sorted, unique keys (see util.UniqSorted).
func (p *palette) bulkKeySorted(sorted []string) string {
	return util.BulkKeySorted("bulk:"+p.ns, sorted)
}

// bulkValid reports whether every requested key is present in items with
// its current generation. Extra members in items are ignored.
func (p *palette) bulkValid(ctx context.Context, sorted []string, items []wire.BulkItem) (bool, error) {
	have := make(map[string]uint64, len(items))
	for _, it := range items {
		have[it.Key] = it.Gen
	}
	storage := make([]string, len(sorted))
	for i, k := range sorted {
		if _, ok := have[k]; !ok {
			return false, nil
		}
		storage[i] = p.singleKey(k)
	}
	cur, err := p.gen.SnapshotMany(ctx, storage)
	if err != nil {
		return false, err
	}
	for i, k := range sorted {
		if have[k] != cur[storage[i]] {
			return false, nil
		}
	}
	return true, nil
}

// healReason maps a payload decode failure to a SelfHealSingle reason.
func healReason(err error) string {
	switch {
	case errors.Is(err, codec.ErrTooLarge):
		return HealTooLarge
	case errors.Is(err, color.ErrWrongLength):
		return HealWrongLength
	case errors.Is(err, color.ErrUnknownDiscriminant):
		return HealUnknownDiscriminant
	case errors.Is(err, color.ErrMalformedPadding):
		return HealMalformedPadding
	case errors.Is(err, color.ErrInvalidNamedColor):
		return HealInvalidNamedColor
	default:
		return HealCorrupt
	}
}
