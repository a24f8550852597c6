package handler

import (
	"net/http"
	"time"

	"github.com/hydrosur/fincore/internal/usecase"
)

// StatsHandler handles reconciliation report HTTP requests.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// PendingByClient returns per-client pending voucher aggregates ordered
// worst-first. The reference time defaults to now and can be pinned with the
// as_of query parameter.
func (h *StatsHandler) PendingByClient(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of parameter", err.Error())
		return
	}

	if asOf == nil {
		now := time.Now().UTC()
		asOf = &now
	}

	report, err := h.statsUC.PendingByClient(r.Context(), *asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build pending report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
