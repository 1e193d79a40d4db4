package domain

import "errors"

// Outcome is the business result of a transfer request. The four values
// are mutually exclusive and their literal strings are a fixed part of
// the API contract, so clients can pattern-match on them.
type Outcome string

const (
	OutcomeSuccess             Outcome = "Transfer successful"
	OutcomeInsufficientBalance Outcome = "Not enough balance"
	OutcomeInvalidAccount      Outcome = "Invalid account"
	OutcomeInvalidAmount       Outcome = "Invalid amount"
)

// String returns the literal outcome string.
func (o Outcome) String() string {
	return string(o)
}

// OutcomeForError maps ledger store errors to transfer outcomes.
// Unknown errors do not map: those are infrastructure faults, not
// business results.
func OutcomeForError(err error) (Outcome, bool) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return OutcomeInvalidAccount, true
	case errors.Is(err, ErrInsufficientBalance):
		return OutcomeInsufficientBalance, true
	case errors.Is(err, ErrInvalidAmount):
		return OutcomeInvalidAmount, true
	default:
		return "", false
	}
}
