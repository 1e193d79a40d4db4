// Package postgres implements the ledger store on PostgreSQL. All
// balance changes go through CommitTransfer, which locks the affected
// account rows and re-validates balances inside one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/usecase"
)

// Store implements usecase.LedgerStore.
type Store struct {
	pool      *pgxpool.Pool
	txManager *TxManager
	retrier   *Retrier
}

// NewStore creates a new Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:      pool,
		txManager: NewTxManager(pool),
		retrier:   NewRetrier(),
	}
}

// GetAccount retrieves an account by id.
func (s *Store) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, balance, created_time FROM accounts WHERE id = $1`, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get account %d: %w", id, err)
	}

	return account, nil
}

// CommitTransfer atomically debits fromID, credits toID and inserts a
// transaction record. Balances are re-read under row locks inside the
// transaction, so a stale pre-check by the caller can never drive a
// balance negative. Commits aborted by lock conflicts are retried.
func (s *Store) CommitTransfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	var record *domain.TransactionRecord

	err := s.retrier.Retry(ctx, func() error {
		r, err := s.commitOnce(ctx, fromID, toID, amount)
		if err != nil {
			return err
		}

		record = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *Store) commitOnce(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	// Lock rows in ascending id order so concurrent transfers on the
	// same pair cannot deadlock.
	ids := []int64{fromID, toID}
	if fromID > toID {
		ids = []int64{toID, fromID}
	}
	if fromID == toID {
		ids = []int64{fromID}
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transfer commit: %w", err)
	}
	defer tx.Rollback(ctx)

	pgxTx := tx.PgxTx()

	rows, err := pgxTx.Query(ctx,
		`SELECT id, balance FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}

	balances := make(map[int64]decimal.Decimal, len(ids))
	for rows.Next() {
		var (
			id      int64
			balance pgtype.Numeric
		)
		if err := rows.Scan(&id, &balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan locked account: %w", err)
		}

		balances[id] = numericToDecimal(balance)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}

	fromBalance, ok := balances[fromID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	toBalance, ok := balances[toID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	if fromBalance.LessThan(amount) {
		return nil, domain.ErrInsufficientBalance
	}

	now := time.Now().UTC()

	if fromID == toID {
		// Net no-op, but still one atomic unit with a record. The engine
		// rejects self-transfers before reaching the store; this branch
		// keeps the store's own contract complete.
		toBalance = fromBalance
	} else {
		if err := s.updateBalance(ctx, pgxTx, fromID, fromBalance.Sub(amount)); err != nil {
			return nil, err
		}

		if err := s.updateBalance(ctx, pgxTx, toID, toBalance.Add(amount)); err != nil {
			return nil, err
		}
	}

	record := &domain.TransactionRecord{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		CreatedTime:   now,
	}

	err = pgxTx.QueryRow(ctx,
		`INSERT INTO transactions (from_account_id, to_account_id, amount, created_time)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		fromID, toID, decimalToNumeric(amount), timeToPgTimestamptz(now),
	).Scan(&record.ID)
	if err != nil {
		return nil, fmt.Errorf("insert transaction record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	return record, nil
}

func (s *Store) updateBalance(ctx context.Context, tx pgx.Tx, id int64, balance decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = $2 WHERE id = $1`, id, decimalToNumeric(balance))
	if err != nil {
		return fmt.Errorf("update balance of account %d: %w", id, err)
	}

	return nil
}

// ListTransactionsByAccount lists records where the account is either
// side of the movement, newest first.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.TransactionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, from_account_id, to_account_id, amount, created_time
		 FROM transactions
		 WHERE from_account_id = $1 OR to_account_id = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions of account %d: %w", accountID, err)
	}
	defer rows.Close()

	var records []*domain.TransactionRecord
	for rows.Next() {
		var (
			record  domain.TransactionRecord
			amount  pgtype.Numeric
			created pgtype.Timestamptz
		)
		if err := rows.Scan(&record.ID, &record.FromAccountID, &record.ToAccountID, &amount, &created); err != nil {
			return nil, fmt.Errorf("scan transaction record: %w", err)
		}

		record.Amount = numericToDecimal(amount)
		record.CreatedTime = created.Time
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions of account %d: %w", accountID, err)
	}

	return records, nil
}

type accountRow interface {
	Scan(dest ...any) error
}

func scanAccount(row accountRow) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
		created pgtype.Timestamptz
	)
	if err := row.Scan(&account.ID, &balance, &created); err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.CreatedTime = created.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

var _ usecase.LedgerStore = (*Store)(nil)
