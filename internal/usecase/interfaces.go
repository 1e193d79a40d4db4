package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/domain"
)

// LedgerStore is the durable home of accounts and transaction records.
// It is the only place where balances change: CommitTransfer re-validates
// both balances inside its atomic unit, because they may have moved
// between the engine's snapshot read and the commit.
type LedgerStore interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	CommitTransfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*domain.TransactionRecord, error)
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.TransactionRecord, error)
}

// BalanceCache caches balance snapshots for the read path. It is never
// consulted for transfer validation.
type BalanceCache interface {
	GetBalance(ctx context.Context, accountID int64) (decimal.Decimal, bool, error)
	SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context, accountIDs ...int64) error
}

// EventPublisher publishes transfer completion events to external systems.
type EventPublisher interface {
	PublishTransferCompleted(ctx context.Context, event *domain.TransferCompletedEvent) error
}
