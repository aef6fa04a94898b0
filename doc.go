// Package colorwire stores colors in a fixed-width binary form behind a
// provider-agnostic palette with compare-and-swap (CAS) safety via per-key
// generations. Single reads never return stale colors; bulk records are
// validated per member on read and rejected if any member is stale.
//
// Components:
//   - color: the Color union and its strict 5-byte codec.
//   - Provider: byte store with TTL (Ristretto, BigCache, Redis).
//   - GenStore: generation counter per key. Local by default, Redis for
//     multi-replica setups.
//
// Keys:
//
//	single:<ns>:<key>  - single records
//	bulk:<ns>:<hash>   - set-shaped records (hash over sorted unique keys)
//
// CAS pattern:
//
//	obs := p.SnapshotGen(k) // before reading the source of truth
//	c   := loadThemeColor(k)
//	_   = p.SetWithGen(ctx, k, c, obs, 0) // write iff current gen == obs
//
// A stored record whose color bytes are not a canonical encoding is
// treated as corrupt and deleted on read.
package colorwire
