package services

import (
	"time"

	"github.com/goldtrust/wallet/internal/store"
	"github.com/goldtrust/wallet/internal/timers"
)

// RestrictionGate decides whether withdraw/buy actions are currently
// permitted. The decision is derived on every call from the activation flag
// and the restriction countdown; it is never stored, so it cannot go stale
// relative to its inputs.
type RestrictionGate struct {
	s  store.Store
	tm *timers.Manager
}

func NewRestrictionGate(s store.Store, tm *timers.Manager) *RestrictionGate {
	return &RestrictionGate{s: s, tm: tm}
}

// IsRestricted reports true only when a restriction window has fully elapsed
// and the account was not activated. While the window is still open the gate
// stays off so the view can show a countdown instead of a block.
func (g *RestrictionGate) IsRestricted() bool {
	var activated bool
	if g.s.Get(store.FlagActivated, &activated) && activated {
		return false
	}
	st := g.tm.Query(timers.KindRestriction)
	if !st.Running {
		return false
	}
	return st.Elapsed
}

// Remaining reports how long the open window has left; zero when no window
// is armed or it already elapsed.
func (g *RestrictionGate) Remaining() time.Duration {
	return g.tm.Query(timers.KindRestriction).Remaining
}

func (g *RestrictionGate) Activated() bool {
	var activated bool
	return g.s.Get(store.FlagActivated, &activated) && activated
}
