package models

// TimedProcess is a resumable countdown persisted as absolute epoch-millisecond
// bounds. Remaining/elapsed are always recomputed from the wall clock on read,
// never decremented in memory, so the countdown survives restarts without drift.
type TimedProcess struct {
	StartTS int64          `json:"start_ts"`
	EndTS   int64          `json:"end_ts"`
	Payload map[string]any `json:"payload,omitempty"`
}
