package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transfer errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrSelfTransfer        = errors.New("cannot transfer to same account")
)
