// Package memory provides a mutex-guarded in-memory ledger store. It
// backs the dev store mode and the concurrency tests; the commit
// contract is identical to the postgres store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/usecase"
)

// Store is an in-memory implementation of usecase.LedgerStore. A single
// mutex serializes commits, so the re-validation inside CommitTransfer
// always observes up-to-date balances.
type Store struct {
	mu       sync.Mutex
	accounts map[int64]*domain.Account
	records  []*domain.TransactionRecord
	nextID   int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]*domain.Account),
		nextID:   1,
	}
}

// Seed inserts accounts, replacing any existing ones with the same id.
func (s *Store) Seed(accounts ...*domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range accounts {
		copied := *a
		s.accounts[a.ID] = &copied
	}
}

// GetAccount returns a copy of the account with the given id.
func (s *Store) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}

// CommitTransfer atomically debits from, credits to and appends a
// transaction record. On any failure no mutation is visible.
func (s *Store) CommitTransfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[fromID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	to, ok := s.accounts[toID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if from.Balance.LessThan(amount) {
		return nil, domain.ErrInsufficientBalance
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	record := &domain.TransactionRecord{
		ID:            s.nextID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		CreatedTime:   time.Now().UTC(),
	}
	s.nextID++
	s.records = append(s.records, record)

	copied := *record

	return &copied, nil
}

// ListTransactionsByAccount returns records where the account is either
// side of the movement, newest first.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*domain.TransactionRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if r.FromAccountID == accountID || r.ToAccountID == accountID {
			copied := *r
			matched = append(matched, &copied)
		}
	}

	if offset >= len(matched) {
		return nil, nil
	}

	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}

var _ usecase.LedgerStore = (*Store)(nil)
