package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/infrastructure/metrics"
)

// TransferUseCase is the request-facing transfer engine. It validates
// requests against snapshot reads and delegates the atomic state change
// to the ledger store. It is stateless between calls.
type TransferUseCase struct {
	store     LedgerStore
	cache     BalanceCache
	publisher EventPublisher
	metrics   *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. cache, publisher and
// m may be nil; the corresponding concern is then skipped.
func NewTransferUseCase(store LedgerStore, cache BalanceCache, publisher EventPublisher, m *metrics.Metrics) *TransferUseCase {
	return &TransferUseCase{
		store:     store,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
	}
}

// BalanceSnapshot is a point-in-time view of an account balance.
type BalanceSnapshot struct {
	AccountID int64
	Balance   decimal.Decimal
}

// GetBalance looks up an account balance. An unknown account id yields
// (nil, nil): the caller sees an explicit empty result, not a fault.
func (uc *TransferUseCase) GetBalance(ctx context.Context, accountID int64) (*BalanceSnapshot, error) {
	if uc.cache != nil {
		balance, hit, err := uc.cache.GetBalance(ctx, accountID)
		if err != nil {
			log.Warn().Err(err).Int64("account_id", accountID).Msg("balance cache read failed")
		} else if hit {
			return &BalanceSnapshot{AccountID: accountID, Balance: balance}, nil
		}
	}

	account, err := uc.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetBalance(ctx, account.ID, account.Balance, BalanceCacheTTL); err != nil {
			log.Warn().Err(err).Int64("account_id", account.ID).Msg("balance cache write failed")
		}
	}

	return &BalanceSnapshot{AccountID: account.ID, Balance: account.Balance}, nil
}

// TransferInput represents a requested transfer.
type TransferInput struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
}

// TransferResult carries the business outcome of a transfer request and,
// on success, the committed transaction record.
type TransferResult struct {
	Outcome domain.Outcome
	Record  *domain.TransactionRecord
}

// Transfer validates a transfer request and, if it passes, commits it
// atomically through the ledger store. Exactly one of the four outcomes
// is produced per call. A non-nil error means an infrastructure fault;
// validation failures are outcomes, never errors.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	start := time.Now()

	result, err := uc.transfer(ctx, input)
	if uc.metrics != nil && err == nil {
		uc.metrics.ObserveTransfer(result.Outcome.String(), time.Since(start))
	}

	return result, err
}

func (uc *TransferUseCase) transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	from, err := uc.store.GetAccount(ctx, input.FromAccountID)
	if err != nil {
		return uc.outcomeOrFault(err)
	}

	if _, err := uc.store.GetAccount(ctx, input.ToAccountID); err != nil {
		return uc.outcomeOrFault(err)
	}

	// Open policy decision: a self-transfer is reported as an invalid
	// account rather than committed as a no-op, so no transaction record
	// is fabricated for a movement of nothing.
	if input.FromAccountID == input.ToAccountID {
		return TransferResult{Outcome: domain.OutcomeInvalidAccount}, nil
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return TransferResult{Outcome: domain.OutcomeInvalidAmount}, nil
	}

	if !from.CanDebit(input.Amount) {
		return TransferResult{Outcome: domain.OutcomeInsufficientBalance}, nil
	}

	record, err := uc.store.CommitTransfer(ctx, input.FromAccountID, input.ToAccountID, input.Amount)
	if err != nil {
		// A concurrent transfer may have invalidated the snapshot checks
		// above; the store's commit-time verdict wins.
		return uc.outcomeOrFault(err)
	}

	uc.afterCommit(ctx, record)

	return TransferResult{Outcome: domain.OutcomeSuccess, Record: record}, nil
}

func (uc *TransferUseCase) outcomeOrFault(err error) (TransferResult, error) {
	if outcome, ok := domain.OutcomeForError(err); ok {
		return TransferResult{Outcome: outcome}, nil
	}

	return TransferResult{}, err
}

// afterCommit handles the best-effort side effects of a committed
// transfer. Failures here are logged and never affect the outcome.
func (uc *TransferUseCase) afterCommit(ctx context.Context, record *domain.TransactionRecord) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, record.FromAccountID, record.ToAccountID); err != nil {
			log.Warn().Err(err).Int64("transaction_id", record.ID).Msg("balance cache invalidation failed")
		}
	}

	if uc.publisher != nil {
		event := &domain.TransferCompletedEvent{
			TransactionID: record.ID,
			FromAccountID: record.FromAccountID,
			ToAccountID:   record.ToAccountID,
			Amount:        record.Amount,
			OccurredAt:    record.CreatedTime,
		}
		if err := uc.publisher.PublishTransferCompleted(ctx, event); err != nil {
			log.Error().Err(err).Int64("transaction_id", record.ID).Msg("transfer event publish failed")
		}
	}
}

// ListTransactionsInput represents input for listing transaction records.
type ListTransactionsInput struct {
	AccountID int64
	Limit     int
	Offset    int
}

// ListTransactions lists transaction records involving an account.
func (uc *TransferUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.TransactionRecord, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultTransactionPageSize
	}

	if input.Limit > MaxTransactionPageSize {
		input.Limit = MaxTransactionPageSize
	}

	return uc.store.ListTransactionsByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}
