package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a balance holder identified by its integer id.
// Accounts are provisioned out-of-band; this service only reads them
// and mutates their balances through committed transfers.
type Account struct {
	ID          int64
	Balance     decimal.Decimal
	CreatedTime time.Time
}

// CanDebit reports whether the account balance covers amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
