package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/adapter/http/handler"
	"github.com/acmebank/account-manager/internal/adapter/repository/memory"
	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/usecase"
)

func newRouterForTest(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	store.Seed(
		&domain.Account{ID: 12345678, Balance: decimal.NewFromInt(1000000)},
		&domain.Account{ID: 88888888, Balance: decimal.NewFromInt(1000000)},
	)

	uc := usecase.NewTransferUseCase(store, nil, nil, nil)

	return NewRouter(RouterConfig{
		AccountHandler: handler.NewAccountHandler(uc),
		HealthHandler:  handler.NewHealthHandler(nil, nil),
		Logger:         zerolog.Nop(),
	})
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := newRouterForTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := newRouterForTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_TransferRoundTrip(t *testing.T) {
	router := newRouterForTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/account/transfer?fromAccountId=12345678&toAccountId=88888888&transferAmount=250.75", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "Transfer successful" {
		t.Fatalf("expected transfer confirmation, got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/account/getAccountBalance?accountId=12345678", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" {
		t.Fatal("expected balance payload for seeded account")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := newRouterForTest(t)

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"GET /api/v1/account/getAccountBalance",
		"POST /api/v1/account/transfer",
		"GET /api/v1/account/transactions",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
