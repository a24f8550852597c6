package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hydrosur/fincore/internal/adapter/http/dto"
	"github.com/hydrosur/fincore/internal/usecase"
)

// CreditHandler handles credit-account HTTP requests.
type CreditHandler struct {
	creditUC *usecase.CreditUseCase
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(creditUC *usecase.CreditUseCase) *CreditHandler {
	return &CreditHandler{creditUC: creditUC}
}

// Create opens a credit account for a deferred sale or order.
func (h *CreditHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.creditUC.Create(r.Context(), req.ToUseCaseInput(actor.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create credit account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreditAccountFromDomain(account))
}

// ApplyPayment applies a partial or full payment to a credit account.
func (h *CreditHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing credit account ID", "")
		return
	}

	var req dto.ApplyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.creditUC.ApplyPayment(r.Context(), req.ToUseCaseInput(id, actor.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply payment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ApplyPaymentResponse{
		Payment: dto.CreditPaymentFromDomain(out.Payment),
		Account: dto.CreditAccountFromDomain(out.Account),
	})
}

// Get retrieves a credit account with its payment history.
func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing credit account ID", "")
		return
	}

	account, payments, err := h.creditUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get credit account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditDetailResponse{
		Account:  dto.CreditAccountFromDomain(account),
		Payments: dto.CreditPaymentsFromDomain(payments),
	})
}

// ListByClient lists a client's credit accounts.
func (h *CreditHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client ID", "")
		return
	}

	accounts, err := h.creditUC.ListByClient(r.Context(), clientID,
		parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list credit accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditAccountsFromDomain(accounts))
}

// Overdue lists pending accounts past their due date. The reference time
// defaults to now and can be pinned with the as_of query parameter.
func (h *CreditHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of parameter", err.Error())
		return
	}

	if asOf == nil {
		now := time.Now().UTC()
		asOf = &now
	}

	accounts, err := h.creditUC.Overdue(r.Context(), usecase.OverdueInput{
		AsOf:   *asOf,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list overdue accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditAccountsFromDomain(accounts))
}
