package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hydrosur/fincore/internal/adapter/http/dto"
	"github.com/hydrosur/fincore/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vouchers?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/vouchers?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/credits/overdue?as_of=2025-06-10T12:00:00Z", nil)
	got, err := parseTimeQuery(req, "as_of")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Year() != 2025 || got.Month() != 6 {
		t.Fatalf("unexpected parsed time: %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/credits/overdue", nil)
	if got, err := parseTimeQuery(req, "as_of"); err != nil || got != nil {
		t.Fatalf("expected nil for missing param, got %v, %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/credits/overdue?as_of=yesterday", nil)
	if _, err := parseTimeQuery(req, "as_of"); err == nil {
		t.Fatalf("expected error for malformed time")
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"overpayment", domain.ErrOverpayment, http.StatusBadRequest},
		{"session already open", domain.ErrSessionAlreadyOpen, http.StatusConflict},
		{"session not closable", domain.ErrSessionNotClosable, http.StatusConflict},
		{"voucher not found", domain.ErrVoucherNotFound, http.StatusNotFound},
		{"no open session", domain.ErrNoOpenSession, http.StatusNotFound},
		{"not voucher owner", domain.ErrNotVoucherOwner, http.StatusForbidden},
		{"admin only", domain.ErrAdminOnly, http.StatusForbidden},
		{"nothing to pay", domain.ErrNothingToPay, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}

func TestRequireActor(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vouchers", nil)

	if _, ok := requireActor(rr, req); ok {
		t.Fatalf("expected missing actor to fail")
	}

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	actor := domain.Actor{ID: "op-1", Role: domain.RoleOperator}
	req = req.WithContext(domain.WithActor(req.Context(), actor))

	got, ok := requireActor(rr, req)
	if !ok || got != actor {
		t.Fatalf("expected actor round-trip, got %+v", got)
	}
}
