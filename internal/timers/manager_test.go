package timers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goldtrust/wallet/internal/store"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager() (*Manager, *testClock, *store.Memory) {
	clock := &testClock{now: time.UnixMilli(1_700_000_000_000)}
	s := store.NewMemory()
	return NewWithClock(s, clock.Now), clock, s
}

func TestQueryAbsentIsNotRunning(t *testing.T) {
	m, _, _ := newTestManager()
	st := m.Query(KindMining)
	require.False(t, st.Running)
	require.False(t, st.Elapsed)
	require.Zero(t, st.Remaining)
}

func TestQueryRecomputesFromWallClock(t *testing.T) {
	tests := []struct {
		name          string
		advance       time.Duration
		wantElapsed   bool
		wantRemaining time.Duration
	}{
		{"just started", 0, false, 10 * time.Second},
		{"halfway", 5 * time.Second, false, 5 * time.Second},
		{"at the boundary", 10 * time.Second, true, 0},
		{"long after, e.g. past a reload", 11 * time.Second, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock, _ := newTestManager()
			m.Start(KindMining, 10*time.Second, map[string]any{"reward": 150000})
			clock.Advance(tt.advance)

			st := m.Query(KindMining)
			require.True(t, st.Running)
			require.Equal(t, tt.wantElapsed, st.Elapsed)
			require.Equal(t, tt.wantRemaining, st.Remaining)
		})
	}
}

func TestQuerySurvivesManagerRestart(t *testing.T) {
	m, clock, s := newTestManager()
	m.Start(KindRestriction, 10*time.Minute, nil)
	clock.Advance(4 * time.Minute)

	// a fresh manager over the same store sees the same countdown
	reloaded := NewWithClock(s, clock.Now)
	st := reloaded.Query(KindRestriction)
	require.True(t, st.Running)
	require.False(t, st.Elapsed)
	require.Equal(t, 6*time.Minute, st.Remaining)
}

func TestStartOverwritesSameKind(t *testing.T) {
	m, clock, _ := newTestManager()
	m.Start(KindMining, 10*time.Second, nil)
	clock.Advance(8 * time.Second)
	m.Start(KindMining, 10*time.Second, nil)

	st := m.Query(KindMining)
	require.Equal(t, 10*time.Second, st.Remaining)
}

func TestKindsAreIndependent(t *testing.T) {
	m, _, _ := newTestManager()
	m.Start(KindMining, time.Second, nil)
	m.Start(KindRestriction, time.Minute, nil)

	m.Clear(KindMining)
	require.False(t, m.Query(KindMining).Running)
	require.True(t, m.Query(KindRestriction).Running)
}
