package models

import "time"

// PendingWithdrawal is the single outstanding withdrawal awaiting code
// verification. At most one exists at any time; it is created by a withdrawal
// request and destroyed on verification success or explicit cancellation.
type PendingWithdrawal struct {
	Account   string         `json:"account"`
	Bank      string         `json:"bank"`
	Amount    int64          `json:"amount"`
	CreatedAt time.Time      `json:"created_at"`
	Meta      map[string]any `json:"meta"`
}
