package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/hydrosur/fincore/internal/adapter/http/dto"
	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
	"github.com/hydrosur/fincore/internal/usecase/mocks"
)

func newVoucherTestRouter(t *testing.T, voucherRepo *mocks.MockVoucherRepository) chi.Router {
	t.Helper()

	ctrl := gomock.NewController(t)

	clients := mocks.NewMockClientDirectory(ctrl)
	clients.EXPECT().GetClient(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Client{ID: "cli-1", Name: "Bodega Central"}, nil).AnyTimes()

	products := mocks.NewMockProductCatalog(ctrl)
	products.EXPECT().GetProduct(gomock.Any(), gomock.Any()).
		Return(&domain.Product{ID: "prod-1", UnitPrice: decimal.RequireFromString("7.50")}, nil).AnyTimes()

	uc := usecase.NewVoucherUseCase(
		mocks.NewMockTransactionManager(),
		voucherRepo,
		mocks.NewMockAuditRepository(),
		clients,
		products,
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	h := NewVoucherHandler(uc)

	r := chi.NewRouter()
	r.Post("/vouchers", h.Create)
	r.Post("/vouchers/{id}/status", h.Transition)
	r.Post("/clients/{clientID}/vouchers/pay-all", h.PayAllPending)

	return r
}

func withActor(req *http.Request, actor domain.Actor) *http.Request {
	return req.WithContext(domain.WithActor(req.Context(), actor))
}

func TestVoucherHandler_Create_Success(t *testing.T) {
	router := newVoucherTestRouter(t, mocks.NewMockVoucherRepository())

	body, _ := json.Marshal(dto.CreateVoucherRequest{
		ClientID:  "cli-1",
		ProductID: "prod-1",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("7.50"),
	})

	req := httptest.NewRequest(http.MethodPost, "/vouchers", bytes.NewReader(body))
	req = withActor(req, domain.Actor{ID: "del-1", Role: domain.RoleDelivery})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.VoucherResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.DeliveryPersonID != "del-1" {
		t.Fatalf("expected the acting agent to own the voucher, got %s", resp.DeliveryPersonID)
	}

	if !resp.TotalAmount.Equal(decimal.RequireFromString("22.50")) {
		t.Fatalf("expected server-computed total 22.50, got %s", resp.TotalAmount)
	}
}

func TestVoucherHandler_Create_InvalidJSON(t *testing.T) {
	router := newVoucherTestRouter(t, mocks.NewMockVoucherRepository())

	req := httptest.NewRequest(http.MethodPost, "/vouchers", bytes.NewBufferString("{invalid json"))
	req = withActor(req, domain.Actor{ID: "del-1", Role: domain.RoleDelivery})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVoucherHandler_Create_MissingActor(t *testing.T) {
	router := newVoucherTestRouter(t, mocks.NewMockVoucherRepository())

	req := httptest.NewRequest(http.MethodPost, "/vouchers", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestVoucherHandler_Transition_StatusCodes(t *testing.T) {
	voucherRepo := mocks.NewMockVoucherRepository()
	voucher := &domain.Voucher{
		ID:               "v-1",
		ClientID:         "cli-1",
		DeliveryPersonID: "del-1",
		Status:           domain.VoucherPending,
		TotalAmount:      decimal.RequireFromString("15.00"),
		CreatedAt:        time.Now().UTC(),
	}
	if err := voucherRepo.Create(context.Background(), voucher); err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	router := newVoucherTestRouter(t, voucherRepo)

	tests := []struct {
		name     string
		actor    domain.Actor
		target   string
		expected int
	}{
		{"own agent confirms delivery", domain.Actor{ID: "del-1", Role: domain.RoleDelivery}, "delivered", http.StatusOK},
		{"other agent is rejected", domain.Actor{ID: "del-2", Role: domain.RoleDelivery}, "delivered", http.StatusForbidden},
		{"client cannot skip to paid", domain.Actor{ID: "cli-1", Role: domain.RoleClient}, "paid", http.StatusBadRequest},
		{"unknown status", domain.Actor{ID: "del-1", Role: domain.RoleDelivery}, "shipped", http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			voucher.Status = domain.VoucherPending

			body, _ := json.Marshal(dto.TransitionVoucherRequest{Status: tt.target})
			req := httptest.NewRequest(http.MethodPost, "/vouchers/v-1/status", bytes.NewReader(body))
			req = withActor(req, tt.actor)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d: %s", tt.expected, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestVoucherHandler_PayAllPending_NothingToPay(t *testing.T) {
	router := newVoucherTestRouter(t, mocks.NewMockVoucherRepository())

	body, _ := json.Marshal(dto.PayAllPendingRequest{PaymentMethod: "cash"})
	req := httptest.NewRequest(http.MethodPost, "/clients/cli-9/vouchers/pay-all", bytes.NewReader(body))
	req = withActor(req, domain.Actor{ID: "op-1", Role: domain.RoleOperator})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d: %s", rec.Code, rec.Body.String())
	}
}
