// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finflow-ledger/internal/api/types"
	"finflow-ledger/internal/service"
	"finflow-ledger/internal/util"
)

// TransactionHandler handles HTTP requests related to transactions.
type TransactionHandler struct {
	responder
	identity *Identity
	service  service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, identity *Identity, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		responder: responder{logger: logger},
		identity:  identity,
		service:   svc,
	}
}

// List returns the caller's transactions, newest first.
// GET /transactions?month=&year=&walletIds=
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	r, userID, err := h.identity.resolve(r, false)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	views, err := h.service.List(r.Context(), userID, period, walletIDsFromQuery(r))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewListResponse(views))
}

// Create books a transaction. A phone in the request selects the integration
// path; otherwise the signed-in user is the owner.
// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	if p := principalFrom(r.Context()); p.External() {
		var raw service.RawTransaction
		if err := json.Unmarshal(body, &raw); err != nil {
			h.respondWithError(w, r, util.InvalidInput("body"))
			return
		}
		tx, err := h.service.RecordExternal(r.Context(), p.Phone, raw)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		h.logger.Info("Transaction recorded from integration", "transaction_id", tx.ID, "user_id", tx.UserID)
		h.respondWithJSON(w, http.StatusCreated, tx)
		return
	}

	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var in service.SessionTransactionInput
	if err := json.Unmarshal(body, &in); err != nil {
		h.respondWithError(w, r, util.InvalidInput("body"))
		return
	}
	tx, err := h.service.Create(r.Context(), userID, in)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, tx)
}

// Get returns one transaction of the signed-in user.
// GET /transactions/{transactionID}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	tx, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "transactionID"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, tx)
}

// Update replaces every editable field of a transaction.
// PUT /transactions/{transactionID}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var in service.SessionTransactionInput
	if err := decodeBody(r, &in); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	tx, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "transactionID"), in)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, tx)
}

// Delete removes a transaction.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "transactionID")); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
