package services

import (
	"strings"

	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/metrics"
	"github.com/goldtrust/wallet/internal/models"
)

// CodesService records activation-code purchase requests and top-ups.
type CodesService struct {
	ldg   *ledger.Ledger
	gate  *RestrictionGate
	audit *Audit

	codePrice int64
}

func NewCodesService(ldg *ledger.Ledger, gate *RestrictionGate, audit *Audit, codePrice int64) *CodesService {
	return &CodesService{ldg: ldg, gate: gate, audit: audit, codePrice: codePrice}
}

// RequestCode appends a pending buy_code entry at the configured price with
// the payment reference in meta. The balance is untouched; code issuance is
// an out-of-band concern.
func (s *CodesService) RequestCode(name, phone, reference, note string) (models.LedgerEntry, error) {
	name = strings.TrimSpace(name)
	phone = models.DigitsOnly(phone)
	reference = strings.TrimSpace(reference)
	if name == "" || phone == "" || reference == "" {
		return models.LedgerEntry{}, ErrInvalidInput
	}
	if s.gate.IsRestricted() {
		return models.LedgerEntry{}, ErrRestricted
	}

	entry := s.ldg.Append(ledger.EntryInput{
		Type:     models.EntryBuyCode,
		Amount:   s.codePrice,
		Status:   models.StatusPending,
		FullName: name,
		Phone:    phone,
		Meta:     map[string]any{"reference": reference, "note": note},
	})
	metrics.LedgerEntriesTotal.WithLabelValues(string(models.EntryBuyCode)).Inc()
	s.audit.Record("code_requested", map[string]any{"reference": reference})
	return entry, nil
}

// TopUp credits the balance together with an approved topup entry.
func (s *CodesService) TopUp(amount int64) (models.LedgerEntry, error) {
	if amount <= 0 {
		return models.LedgerEntry{}, ErrInvalidInput
	}
	entry := s.ldg.Apply(amount, ledger.EntryInput{
		Type:   models.EntryTopUp,
		Amount: amount,
		Status: models.StatusApproved,
	})
	metrics.LedgerEntriesTotal.WithLabelValues(string(models.EntryTopUp)).Inc()
	s.audit.Record("topup", map[string]any{"amount": amount})
	return entry, nil
}
