package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompletedEvent is emitted after a transfer commits. Publishing
// is best-effort and happens outside the storage transaction.
type TransferCompletedEvent struct {
	EventID       string          `json:"event_id"`
	TransactionID int64           `json:"transaction_id"`
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
