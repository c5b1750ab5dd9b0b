package services

import "errors"

// Every mutating operation returns one of these named errors or succeeds;
// nothing in the core is fatal. Storage failure never surfaces here, since
// the store degrades to defaults on its own.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidCode         = errors.New("invalid code")
	ErrNoPendingWithdrawal = errors.New("no pending withdrawal")
	ErrRestricted          = errors.New("account restricted")
	ErrMiningActive        = errors.New("mining session in progress")
	ErrMiningNotFinished   = errors.New("mining session not finished")
	ErrAlreadyMined        = errors.New("mining reward already claimed")
	ErrNoProfile           = errors.New("no registered profile")
	ErrProfileExists       = errors.New("profile already registered")
)
