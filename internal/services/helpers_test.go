package services

import (
	"testing"
	"time"

	"github.com/goldtrust/wallet/internal/auth"
	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
	"github.com/goldtrust/wallet/internal/timers"
)

const testCode = "GT1024W"

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fixture wires a full wallet over an in-memory store with a fake clock.
type fixture struct {
	store  *store.Memory
	clock  *testClock
	ledger *ledger.Ledger
	timers *timers.Manager
	gate   *RestrictionGate

	profile    *ProfileService
	withdrawal *WithdrawalService
	mining     *MiningService
	codes      *CodesService
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()

	s := store.NewMemory()
	clock := &testClock{now: time.UnixMilli(1_700_000_000_000)}
	ldg := ledger.NewWithClock(s, clock.Now)
	tm := timers.NewWithClock(s, clock.Now)
	audit := NewAudit(s)
	gate := NewRestrictionGate(s, tm)

	hash, err := auth.HashCode(testCode)
	if err != nil {
		t.Fatalf("hash code: %v", err)
	}

	f := &fixture{
		store:      s,
		clock:      clock,
		ledger:     ldg,
		timers:     tm,
		gate:       gate,
		profile:    NewProfileService(s, ldg, audit),
		withdrawal: NewWithdrawalService(s, ldg, tm, gate, audit, hash, 10*time.Minute, 10*time.Minute),
		mining:     NewMiningService(s, ldg, tm, audit, 10*time.Second, 150000, 200000),
	}
	f.codes = NewCodesService(ldg, gate, audit, 8000)

	s.Set(store.KeyUser, models.UserProfile{
		FullName: "Ada Obi",
		Phone:    "08031234567",
		Email:    "ada@example.com",
		Plan:     models.DefaultPlan,
	})
	ldg.SetBalance(balance)
	return f
}
