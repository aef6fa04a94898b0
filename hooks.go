package colorwire

// SelfHealSingle reasons. The color-class reasons mirror the color.Err*
// sentinels; HealTooLarge comes from codec.ErrTooLarge.
const (
	HealCorrupt             = "corrupt"
	HealGenMismatch         = "gen_mismatch"
	HealTooLarge            = "too_large"
	HealWrongLength         = "wrong_length"
	HealUnknownDiscriminant = "unknown_discriminant"
	HealMalformedPadding    = "malformed_padding"
	HealInvalidNamedColor   = "invalid_named_color"
)

// Hooks are callbacks for high-signal events. Implementations MUST be cheap
// and non-blocking; wrap slow ones with hooks/async.
type Hooks interface {
	// A single record was deleted on read. reason is one of the Heal* constants.
	SelfHealSingle(storageKey, reason string)

	// A bulk read was rejected and fell back to singles.
	// reason ∈ {"decode_error", "invalid_or_stale", "snapshot_error"}
	BulkRejected(namespace string, requested int, reason string)

	// Provider returned ok=false on Set.
	ProviderSetRejected(storageKey string, isBulk bool)

	// GenStore errors. count is the number of keys involved.
	GenSnapshotError(count int, err error)
	GenBumpError(storageKey string, err error)

	// Both gen bump and delete failed during Invalidate.
	InvalidateOutage(key string, bumpErr, delErr error)

	// Bulk is enabled with a local GenStore (stale bulks possible across replicas).
	LocalGenWithBulk()
}

// NopHooks is the default.
type NopHooks struct{}

func (NopHooks) SelfHealSingle(string, string)         {}
func (NopHooks) BulkRejected(string, int, string)      {}
func (NopHooks) ProviderSetRejected(string, bool)      {}
func (NopHooks) GenSnapshotError(int, error)           {}
func (NopHooks) GenBumpError(string, error)            {}
func (NopHooks) InvalidateOutage(string, error, error) {}
func (NopHooks) LocalGenWithBulk()                     {}
