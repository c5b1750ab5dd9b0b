package models

import "time"

type EntryType string

const (
	EntryMine            EntryType = "mine"
	EntryWithdraw        EntryType = "withdraw"
	EntryWithdrawConfirm EntryType = "withdraw_confirm"
	EntryBuyCode         EntryType = "buy_code"
	EntryTopUp           EntryType = "topup"
)

type EntryStatus string

const (
	StatusPending      EntryStatus = "pending"
	StatusSuccessful   EntryStatus = "successful"
	StatusClaimed      EntryStatus = "claimed"
	StatusApproved     EntryStatus = "approved"
	StatusUnsuccessful EntryStatus = "unsuccessful"
)

// LedgerEntry is one immutable balance-affecting or status-changing event.
// Entries are never edited after creation, only superseded by newer entries;
// the stored list keeps the newest entry first.
type LedgerEntry struct {
	ID        string         `json:"id"`
	Type      EntryType      `json:"type"`
	Amount    int64          `json:"amount"`
	Status    EntryStatus    `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	FullName  string         `json:"fullName"`
	Phone     string         `json:"phone"`
	Meta      map[string]any `json:"meta"`
	Account   string         `json:"account,omitempty"`
	Bank      string         `json:"bank,omitempty"`
}
