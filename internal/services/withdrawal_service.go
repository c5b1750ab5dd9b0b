package services

import (
	"strings"
	"time"

	"github.com/goldtrust/wallet/internal/auth"
	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/metrics"
	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
	"github.com/goldtrust/wallet/internal/timers"
)

// WithdrawalService coordinates the single pending withdrawal: request,
// code verification, ledger commit and arming of the restriction window.
type WithdrawalService struct {
	s     store.Store
	ldg   *ledger.Ledger
	tm    *timers.Manager
	gate  *RestrictionGate
	audit *Audit

	codeHash          string
	paymentWindow     time.Duration
	restrictionWindow time.Duration
	now               func() time.Time
}

func NewWithdrawalService(
	s store.Store,
	ldg *ledger.Ledger,
	tm *timers.Manager,
	gate *RestrictionGate,
	audit *Audit,
	codeHash string,
	paymentWindow, restrictionWindow time.Duration,
) *WithdrawalService {
	return &WithdrawalService{
		s:                 s,
		ldg:               ldg,
		tm:                tm,
		gate:              gate,
		audit:             audit,
		codeHash:          codeHash,
		paymentWindow:     paymentWindow,
		restrictionWindow: restrictionWindow,
		now:               time.Now,
	}
}

// Request creates the pending withdrawal, records a pending ledger entry and
// arms the payment countdown. On any validation failure nothing is mutated.
func (s *WithdrawalService) Request(account, bank string, amount int64) (models.PendingWithdrawal, error) {
	account = models.DigitsOnly(account)
	bank = strings.TrimSpace(bank)
	if account == "" || bank == "" || amount <= 0 {
		return models.PendingWithdrawal{}, ErrInvalidInput
	}
	if s.gate.IsRestricted() {
		return models.PendingWithdrawal{}, ErrRestricted
	}
	if amount > s.ldg.Balance() {
		return models.PendingWithdrawal{}, ErrInsufficientBalance
	}

	pending := models.PendingWithdrawal{
		Account:   account,
		Bank:      bank,
		Amount:    amount,
		CreatedAt: s.now(),
		Meta:      map[string]any{},
	}
	s.s.Set(store.KeyPendingWithdrawal, pending)
	s.ldg.Append(ledger.EntryInput{
		Type:    models.EntryWithdraw,
		Amount:  amount,
		Status:  models.StatusPending,
		Account: account,
		Bank:    bank,
		Meta:    map[string]any{"bank": bank, "account": account},
	})
	s.tm.Start(timers.KindPayment, s.paymentWindow, nil)

	metrics.LedgerEntriesTotal.WithLabelValues(string(models.EntryWithdraw)).Inc()
	s.audit.Record("withdrawal_requested", map[string]any{"bank": bank, "amount": amount})
	return pending, nil
}

// Pending returns the outstanding withdrawal, if any.
func (s *WithdrawalService) Pending() (models.PendingWithdrawal, bool) {
	var p models.PendingWithdrawal
	ok := s.s.Get(store.KeyPendingWithdrawal, &p)
	return p, ok
}

// Cancel discards the outstanding withdrawal and its payment countdown.
func (s *WithdrawalService) Cancel() {
	s.s.Remove(store.KeyPendingWithdrawal)
	s.tm.Clear(timers.KindPayment)
	s.audit.Record("withdrawal_cancelled", nil)
}

// Verify checks the supplied code against the configured one. A match commits
// the withdrawal: the balance is debited together with a successful ledger
// entry, the pending record and payment countdown are cleared, the
// restriction window is armed and the activation flag drops (so restriction
// engages at window end unless re-activated). A mismatch mutates nothing.
func (s *WithdrawalService) Verify(code string) (models.LedgerEntry, error) {
	pending, ok := s.Pending()
	if !ok {
		metrics.WithdrawalVerifications.WithLabelValues("missing_pending").Inc()
		return models.LedgerEntry{}, ErrNoPendingWithdrawal
	}
	if auth.VerifyCode(code, s.codeHash) != nil {
		metrics.WithdrawalVerifications.WithLabelValues("rejected").Inc()
		s.audit.Record("withdrawal_rejected", map[string]any{"reason": "invalid code"})
		return models.LedgerEntry{}, ErrInvalidCode
	}

	entry := s.ldg.Apply(-pending.Amount, ledger.EntryInput{
		Type:    models.EntryWithdrawConfirm,
		Amount:  pending.Amount,
		Status:  models.StatusSuccessful,
		Account: pending.Account,
		Bank:    pending.Bank,
		Meta: map[string]any{
			"bank":    pending.Bank,
			"account": pending.Account,
			"remark":  "withdrawal confirmed",
		},
	})
	s.s.Remove(store.KeyPendingWithdrawal)
	s.tm.Clear(timers.KindPayment)
	s.tm.Start(timers.KindRestriction, s.restrictionWindow, nil)
	s.s.Set(store.FlagActivated, false)

	metrics.WithdrawalVerifications.WithLabelValues("verified").Inc()
	metrics.LedgerEntriesTotal.WithLabelValues(string(models.EntryWithdrawConfirm)).Inc()
	s.audit.Record("withdrawal_verified", map[string]any{"bank": pending.Bank, "amount": pending.Amount})
	return entry, nil
}

// Activate satisfies the restriction gate immediately, regardless of any
// remaining window time, and drops the armed window.
func (s *WithdrawalService) Activate() {
	s.s.Set(store.FlagActivated, true)
	s.tm.Clear(timers.KindRestriction)
	s.audit.Record("account_activated", nil)
}

func (s *WithdrawalService) Gate() *RestrictionGate { return s.gate }
