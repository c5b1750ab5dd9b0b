package timers

import (
	"time"

	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
)

// Kind names one resumable countdown. Multiple kinds coexist independently,
// but at most one active instance per kind.
type Kind string

const (
	KindMining      Kind = "mining"
	KindPayment     Kind = "payment"
	KindRestriction Kind = "restriction"
)

// Status is a point-in-time view of a countdown, recomputed from the wall
// clock on every query. An absent countdown reads as not running, never as
// complete.
type Status struct {
	Running   bool
	Elapsed   bool
	Remaining time.Duration
	Payload   map[string]any
}

type Manager struct {
	s   store.Store
	now func() time.Time
}

func New(s store.Store) *Manager {
	return &Manager{s: s, now: time.Now}
}

func NewWithClock(s store.Store, now func() time.Time) *Manager {
	return &Manager{s: s, now: now}
}

// Start arms a countdown, overwriting any existing process of the same kind.
func (m *Manager) Start(kind Kind, d time.Duration, payload map[string]any) models.TimedProcess {
	start := m.now().UnixMilli()
	p := models.TimedProcess{
		StartTS: start,
		EndTS:   start + d.Milliseconds(),
		Payload: payload,
	}
	m.s.Set(key(kind), p)
	return p
}

func (m *Manager) Query(kind Kind) Status {
	var p models.TimedProcess
	if !m.s.Get(key(kind), &p) {
		return Status{}
	}
	nowMS := m.now().UnixMilli()
	st := Status{Running: true, Payload: p.Payload}
	if nowMS >= p.EndTS {
		st.Elapsed = true
		return st
	}
	st.Remaining = time.Duration(p.EndTS-nowMS) * time.Millisecond
	return st
}

func (m *Manager) Clear(kind Kind) {
	m.s.Remove(key(kind))
}

func key(kind Kind) string { return store.TimedPrefix + string(kind) }
