// internal/api/handler/summary.go
package handler

import (
	"log/slog"
	"net/http"

	"finflow-ledger/internal/api/types"
	"finflow-ledger/internal/money"
	"finflow-ledger/internal/report"
	"finflow-ledger/internal/service"
	"finflow-ledger/internal/util"
)

// SummaryHandler serves the dashboard totals.
type SummaryHandler struct {
	responder
	identity  *Identity
	service   service.SummaryService
	formatter *money.Formatter
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc service.SummaryService, identity *Identity, formatter *money.Formatter, logger *slog.Logger) *SummaryHandler {
	if formatter == nil {
		formatter = money.Default()
	}
	return &SummaryHandler{
		responder: responder{logger: logger},
		identity:  identity,
		service:   svc,
		formatter: formatter,
	}
}

// Get returns the caller's summary.
// GET /summary?mode=all|month&walletIds=a,b
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode, err := report.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.respondWithError(w, r, util.InvalidInput("mode"))
		return
	}
	r, userID, err := h.identity.resolve(r, false)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	summary, err := h.service.Summary(r.Context(), userID, mode, walletIDsFromQuery(r))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewSummary(summary, mode, h.formatter))
}
