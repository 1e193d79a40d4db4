package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/adapter/http/dto"
	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/usecase"
)

// TransferService defines the behavior needed by AccountHandler.
type TransferService interface {
	GetBalance(ctx context.Context, accountID int64) (*usecase.BalanceSnapshot, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (usecase.TransferResult, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.TransactionRecord, error)
}

// AccountHandler handles account balance and transfer requests.
//
// Both endpoints report business results with transport status 200; the
// transfer outcome travels entirely in the response body. Only transport
// problems and infrastructure faults use error statuses.
type AccountHandler struct {
	service TransferService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service TransferService) *AccountHandler {
	return &AccountHandler{service: service}
}

// GetAccountBalance returns the balance of an account. An unknown id
// yields an empty 200 response, indistinguishable from "nothing to show".
func (h *AccountHandler) GetAccountBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := parseInt64Query(r, "accountId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid accountId parameter", "")
		return
	}

	snapshot, err := h.service.GetBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get balance", err.Error())
		return
	}

	if snapshot == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromSnapshot(snapshot))
}

// Transfer moves funds between two accounts and answers with one of the
// four literal outcome strings.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	fromID, okFrom := parseInt64Query(r, "fromAccountId")
	toID, okTo := parseInt64Query(r, "toAccountId")
	if !okFrom || !okTo {
		writeError(w, http.StatusBadRequest, "invalid account id parameter", "")
		return
	}

	amount, err := decimal.NewFromString(r.URL.Query().Get("transferAmount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transferAmount parameter", err.Error())
		return
	}

	result, err := h.service.Transfer(r.Context(), usecase.TransferInput{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "transfer failed", err.Error())
		return
	}

	writeText(w, http.StatusOK, result.Outcome.String())
}

// ListTransactions lists transaction records involving an account.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := parseInt64Query(r, "accountId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid accountId parameter", "")
		return
	}

	records, err := h.service.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}
