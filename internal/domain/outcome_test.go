package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/acmebank/account-manager/internal/domain"
)

func TestOutcomeLiterals(t *testing.T) {
	tests := []struct {
		outcome domain.Outcome
		literal string
	}{
		{domain.OutcomeSuccess, "Transfer successful"},
		{domain.OutcomeInsufficientBalance, "Not enough balance"},
		{domain.OutcomeInvalidAccount, "Invalid account"},
		{domain.OutcomeInvalidAmount, "Invalid amount"},
	}

	for _, tt := range tests {
		if tt.outcome.String() != tt.literal {
			t.Errorf("expected literal %q, got %q", tt.literal, tt.outcome.String())
		}
	}
}

func TestOutcomeForError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome domain.Outcome
		mapped  bool
	}{
		{"account not found", domain.ErrAccountNotFound, domain.OutcomeInvalidAccount, true},
		{"insufficient balance", domain.ErrInsufficientBalance, domain.OutcomeInsufficientBalance, true},
		{"invalid amount", domain.ErrInvalidAmount, domain.OutcomeInvalidAmount, true},
		{"wrapped store error", fmt.Errorf("commit: %w", domain.ErrInsufficientBalance), domain.OutcomeInsufficientBalance, true},
		{"infrastructure fault", errors.New("connection refused"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := domain.OutcomeForError(tt.err)
			if ok != tt.mapped {
				t.Fatalf("expected mapped=%v, got %v", tt.mapped, ok)
			}
			if outcome != tt.outcome {
				t.Fatalf("expected outcome %q, got %q", tt.outcome, outcome)
			}
		})
	}
}
