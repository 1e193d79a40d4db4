package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the immutable audit entry created for each
// committed transfer. Records are append-only: never updated, never
// deleted. IDs are store-assigned and monotonically increasing.
type TransactionRecord struct {
	ID            int64
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	CreatedTime   time.Time
}
