package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
)

// EntryInput is the loose shape callers hand to Append. Every field is
// optional except Type; normalization fills the rest.
type EntryInput struct {
	ID        string
	Type      models.EntryType
	Amount    int64
	Status    models.EntryStatus
	CreatedAt time.Time
	FullName  string
	Phone     string
	Meta      map[string]any
	Account   string
	Bank      string
}

// Ledger owns the stored balance and the append-only transaction log.
type Ledger struct {
	mu  sync.Mutex
	s   store.Store
	now func() time.Time
}

func New(s store.Store) *Ledger {
	return &Ledger{s: s, now: time.Now}
}

func NewWithClock(s store.Store, now func() time.Time) *Ledger {
	return &Ledger{s: s, now: now}
}

// Append normalizes the input into a canonical entry and prepends it to the
// stored log. Existing entries are never mutated or removed.
func (l *Ledger) Append(in EntryInput) models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.normalize(in)
	l.s.Set(store.KeyTransactions, append([]models.LedgerEntry{e}, l.entries()...))
	return e
}

// ReplaceAll overwrites the stored log verbatim. No normalization is applied;
// callers must pass well-formed entries.
func (l *Ledger) ReplaceAll(list []models.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if list == nil {
		list = []models.LedgerEntry{}
	}
	l.s.Set(store.KeyTransactions, list)
}

func (l *Ledger) Entries() []models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries()
}

func (l *Ledger) SetBalance(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.s.Set(store.KeyBalance, n)
}

func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance()
}

// Apply binds a balance mutation and its ledger entry into one guarded state
// transition: the entry is appended first, then the balance delta lands, so a
// reloaded session never sees a moved balance without its entry.
func (l *Ledger) Apply(delta int64, in EntryInput) models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.normalize(in)
	l.s.Set(store.KeyTransactions, append([]models.LedgerEntry{e}, l.entries()...))
	l.s.Set(store.KeyBalance, l.balance()+delta)
	return e
}

func (l *Ledger) entries() []models.LedgerEntry {
	var list []models.LedgerEntry
	if !l.s.Get(store.KeyTransactions, &list) || list == nil {
		return []models.LedgerEntry{}
	}
	return list
}

func (l *Ledger) balance() int64 {
	var n int64
	if !l.s.Get(store.KeyBalance, &n) {
		return 0
	}
	return n
}

func (l *Ledger) normalize(in EntryInput) models.LedgerEntry {
	e := models.LedgerEntry{
		ID:        in.ID,
		Type:      in.Type,
		Amount:    in.Amount,
		Status:    in.Status,
		CreatedAt: in.CreatedAt,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Account:   in.Account,
		Bank:      in.Bank,
		Meta:      map[string]any{},
	}
	if e.ID == "" {
		e.ID = "tx-" + uuid.NewString()
	}
	if e.Amount < 0 {
		e.Amount = 0
	}
	if e.Status == "" {
		e.Status = models.StatusPending
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.now()
	}
	for k, v := range in.Meta {
		e.Meta[k] = v
	}
	if e.FullName == "" || e.Phone == "" {
		var u models.UserProfile
		if l.s.Get(store.KeyUser, &u) {
			if e.FullName == "" {
				e.FullName = u.FullName
			}
			if e.Phone == "" {
				e.Phone = u.Phone
			}
		}
	}
	return e
}
