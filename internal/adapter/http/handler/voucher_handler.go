package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hydrosur/fincore/internal/adapter/http/dto"
	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// VoucherHandler handles voucher HTTP requests.
type VoucherHandler struct {
	voucherUC *usecase.VoucherUseCase
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherUC *usecase.VoucherUseCase) *VoucherHandler {
	return &VoucherHandler{voucherUC: voucherUC}
}

// Create records a deferred charge for a delivery.
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	voucher, err := h.voucherUC.Create(r.Context(), req.ToUseCaseInput(actor.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.VoucherFromDomain(voucher))
}

// Transition moves a voucher one step forward through the normal flow.
func (h *VoucherHandler) Transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing voucher ID", "")
		return
	}

	var req dto.TransitionVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	voucher, err := h.voucherUC.Transition(r.Context(), req.ToUseCaseInput(id, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transition voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoucherFromDomain(voucher))
}

// ForceSetStatus applies an audited administrative status override.
func (h *VoucherHandler) ForceSetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing voucher ID", "")
		return
	}

	var req dto.ForceSetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	voucher, err := h.voucherUC.ForceSetStatus(r.Context(), req.ToUseCaseInput(id, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to override voucher status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoucherFromDomain(voucher))
}

// PayAllPending settles every pending voucher of a client in one batch.
func (h *VoucherHandler) PayAllPending(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client ID", "")
		return
	}

	var req dto.PayAllPendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.voucherUC.PayAllPending(r.Context(), req.ToUseCaseInput(clientID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle pending vouchers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PayAllPendingResponse{
		Count:       out.Count,
		TotalAmount: out.TotalAmount,
		PaidAt:      out.PaidAt,
	})
}

// Get retrieves a voucher by ID.
func (h *VoucherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing voucher ID", "")
		return
	}

	voucher, err := h.voucherUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoucherFromDomain(voucher))
}

// List lists vouchers for a client or a delivery agent.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.VoucherStatus
	if s := r.URL.Query().Get("status"); s != "" {
		vs := domain.VoucherStatus(s)
		if !vs.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid status filter", s)
			return
		}
		status = &vs
	}

	clientID := r.URL.Query().Get("client_id")
	agentID := r.URL.Query().Get("delivery_person_id")
	if clientID == "" && agentID == "" {
		writeError(w, http.StatusBadRequest, "missing filter", "client_id or delivery_person_id is required")
		return
	}

	vouchers, err := h.voucherUC.List(r.Context(), usecase.ListVouchersInput{
		ClientID:         clientID,
		DeliveryPersonID: agentID,
		Status:           status,
		Limit:            parseIntQuery(r, "limit", 20),
		Offset:           parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list vouchers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VouchersFromDomain(vouchers))
}

// Stats returns voucher aggregates for a client, a delivery agent, or globally.
func (h *VoucherHandler) Stats(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
		return
	}

	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
		return
	}

	stats, err := h.voucherUC.Stats(r.Context(), usecase.StatsInput{
		ClientID:         r.URL.Query().Get("client_id"),
		DeliveryPersonID: r.URL.Query().Get("delivery_person_id"),
		From:             from,
		To:               to,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get voucher stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoucherStatsFromDomain(stats))
}

// AuditTrail returns the override history of a voucher.
func (h *VoucherHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing voucher ID", "")
		return
	}

	logs, err := h.voucherUC.AuditTrail(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
