package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/adapter/http/dto"
	"github.com/hydrosur/fincore/internal/domain"
)

var (
	operator = domain.Actor{ID: "op-1", Role: domain.RoleOperator}
	admin    = domain.Actor{ID: "adm-1", Role: domain.RoleAdmin}
)

func TestDrawerLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := env.db.CreateTestClient(ctx, "Bodega Central", true)

	// Open with 100.00
	var session dto.CashSessionResponse
	code := env.do(t, http.MethodPost, "/api/v1/cash-sessions/", operator, dto.OpenSessionRequest{
		OpeningAmount: decimal.RequireFromString("100.00"),
	}, &session)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 opening session, got %d", code)
	}

	// A second open conflicts while the first is still open
	code = env.do(t, http.MethodPost, "/api/v1/cash-sessions/", operator, dto.OpenSessionRequest{
		OpeningAmount: decimal.RequireFromString("50.00"),
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for second open, got %d", code)
	}

	// Completed sale of 75.00 since open, +50.00 income, -20.00 expense
	env.db.CreateTestSale(ctx, client.ID, decimal.RequireFromString("75.00"), time.Now().UTC())

	code = env.do(t, http.MethodPost, "/api/v1/cash-sessions/movements", operator, dto.RecordMovementRequest{
		Type: "income", Amount: decimal.RequireFromString("50.00"), Concept: "change fund top-up",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 recording income, got %d", code)
	}

	code = env.do(t, http.MethodPost, "/api/v1/cash-sessions/movements", operator, dto.RecordMovementRequest{
		Type: "expense", Amount: decimal.RequireFromString("20.00"), Concept: "fuel",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 recording expense, got %d", code)
	}

	// Running balance: 100 + 75 + 50 - 20 = 205
	var current dto.CurrentSessionResponse
	if code := env.do(t, http.MethodGet, "/api/v1/cash-sessions/current", operator, nil, &current); code != http.StatusOK {
		t.Fatalf("expected 200 for current session, got %d", code)
	}
	if !current.Open || !current.Summary.CurrentBalance.Equal(decimal.RequireFromString("205.00")) {
		t.Fatalf("expected running balance 205.00, got %+v", current.Summary)
	}

	// Close counting exactly the expected amount
	var closed dto.CashSessionResponse
	code = env.do(t, http.MethodPost, "/api/v1/cash-sessions/close", operator, dto.CloseSessionRequest{
		ActualAmount: decimal.RequireFromString("205.00"),
	}, &closed)
	if code != http.StatusOK {
		t.Fatalf("expected 200 closing session, got %d", code)
	}

	if !closed.ExpectedAmount.Equal(decimal.RequireFromString("205.00")) {
		t.Fatalf("expected expected_amount 205.00, got %s", closed.ExpectedAmount)
	}
	if !closed.Difference.IsZero() {
		t.Fatalf("expected zero difference, got %s", closed.Difference)
	}

	// Closing again conflicts
	code = env.do(t, http.MethodPost, "/api/v1/cash-sessions/close", operator, dto.CloseSessionRequest{
		ActualAmount: decimal.RequireFromString("205.00"),
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for second close, got %d", code)
	}
}
