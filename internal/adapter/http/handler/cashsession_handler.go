package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hydrosur/fincore/internal/adapter/http/dto"
	"github.com/hydrosur/fincore/internal/usecase"
)

// CashSessionHandler handles cash-drawer session HTTP requests.
type CashSessionHandler struct {
	sessionUC *usecase.CashSessionUseCase
}

// NewCashSessionHandler creates a new CashSessionHandler.
func NewCashSessionHandler(sessionUC *usecase.CashSessionUseCase) *CashSessionHandler {
	return &CashSessionHandler{sessionUC: sessionUC}
}

// Open opens the cash session.
func (h *CashSessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.sessionUC.Open(r.Context(), req.ToUseCaseInput(actor.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open session", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashSessionFromDomain(session))
}

// RecordMovement records a manual income or expense against the open session.
func (h *CashSessionHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.sessionUC.RecordMovement(r.Context(), req.ToUseCaseInput(actor.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record movement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashMovementFromDomain(movement))
}

// Close reconciles and closes the open session.
func (h *CashSessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CloseSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.sessionUC.Close(r.Context(), req.ToUseCaseInput(actor.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close session", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashSessionFromDomain(session))
}

// Current returns the open session with its movements and running balance.
func (h *CashSessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	out, err := h.sessionUC.CurrentSession(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get current session", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrentSessionFromOutput(out))
}

// History lists closed sessions filtered by closing date.
func (h *CashSessionHandler) History(w http.ResponseWriter, r *http.Request) {
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

	sessions, err := h.sessionUC.History(r.Context(), usecase.HistoryInput{
		From:   from,
		To:     to,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list sessions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashSessionsFromDomain(sessions))
}

// Report returns one session with its movement trail.
func (h *CashSessionHandler) Report(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	out, err := h.sessionUC.SessionReport(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get session report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionReportResponse{
		Session:   dto.CashSessionFromDomain(out.Session),
		Movements: dto.CashMovementsFromDomain(out.Movements),
	})
}
