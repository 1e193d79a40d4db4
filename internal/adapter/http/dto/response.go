package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/usecase"
)

// BalanceResponse represents a balance lookup in API responses.
type BalanceResponse struct {
	AccountID int64           `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceFromSnapshot converts a balance snapshot to a response.
func BalanceFromSnapshot(s *usecase.BalanceSnapshot) *BalanceResponse {
	return &BalanceResponse{
		AccountID: s.AccountID,
		Balance:   s.Balance,
	}
}

// TransactionResponse represents a transaction record in API responses.
type TransactionResponse struct {
	ID            int64           `json:"id"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedTime   time.Time       `json:"createdTime"`
}

// TransactionFromDomain converts a domain record to a response.
func TransactionFromDomain(r *domain.TransactionRecord) *TransactionResponse {
	return &TransactionResponse{
		ID:            r.ID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		CreatedTime:   r.CreatedTime,
	}
}

// TransactionsFromDomain converts domain records to responses.
func TransactionsFromDomain(records []*domain.TransactionRecord) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, r := range records {
		result[i] = TransactionFromDomain(r)
	}
	return result
}

// ErrorResponse represents an infrastructure fault in API responses.
// Business outcomes of a transfer are never reported through this type.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
