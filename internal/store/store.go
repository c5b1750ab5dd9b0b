package store

// Persisted key layout. Any compatible implementation must honor these
// namespaces and shapes.
const (
	KeyUser              = "user"               // models.UserProfile
	KeyBalance           = "balance"            // int64
	KeyTransactions      = "transactions"       // []models.LedgerEntry, newest first
	KeyPendingWithdrawal = "pending_withdrawal" // models.PendingWithdrawal
	KeyAudit             = "audit"              // []models.AuditRecord, newest first

	TimedPrefix = "timed:" // models.TimedProcess per countdown kind

	FlagActivated   = "flag:activated"
	FlagMined       = "flag:mined"
	FlagSeenIntro   = "flag:seen_intro"
	FlagSeenWelcome = "flag:seen_welcome"
)

// Store is a namespaced get/set/remove of JSON-serializable records. No
// operation ever returns an error: when the underlying engine is unavailable
// or a stored record is unparsable, Get reports the record as absent and
// Set/Remove become no-ops, so callers deterministically fall back to
// "no persisted state" instead of crashing.
type Store interface {
	// Get unmarshals the record under key into dest and reports whether a
	// usable record was found.
	Get(key string, dest any) bool
	Set(key string, value any)
	Remove(key string)
}
