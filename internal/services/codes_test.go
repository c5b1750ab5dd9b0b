package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/timers"
)

func TestRequestCodeAppendsPendingEntry(t *testing.T) {
	f := newFixture(t, 0)

	entry, err := f.codes.RequestCode("Ada Obi", "08031234567", "REF-1234", "paid via transfer")
	require.NoError(t, err)
	require.Equal(t, models.EntryBuyCode, entry.Type)
	require.Equal(t, models.StatusPending, entry.Status)
	require.EqualValues(t, 8000, entry.Amount)
	require.Equal(t, "REF-1234", entry.Meta["reference"])

	require.EqualValues(t, 0, f.ledger.Balance(), "purchase request never moves the balance")
}

func TestRequestCodeValidation(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.codes.RequestCode("", "08031234567", "REF", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.codes.RequestCode("Ada Obi", "08031234567", " ", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, f.ledger.Entries())
}

func TestRequestCodeBlockedWhileRestricted(t *testing.T) {
	f := newFixture(t, 0)
	f.timers.Start(timers.KindRestriction, 10*time.Minute, nil)
	f.clock.Advance(11 * time.Minute)

	_, err := f.codes.RequestCode("Ada Obi", "08031234567", "REF-1234", "")
	require.ErrorIs(t, err, ErrRestricted)
}

func TestTopUpCreditsBalance(t *testing.T) {
	f := newFixture(t, 500)

	entry, err := f.codes.TopUp(2500)
	require.NoError(t, err)
	require.Equal(t, models.EntryTopUp, entry.Type)
	require.Equal(t, models.StatusApproved, entry.Status)
	require.EqualValues(t, 3000, f.ledger.Balance())

	_, err = f.codes.TopUp(0)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.EqualValues(t, 3000, f.ledger.Balance())
}
