// internal/api/handler/wallet.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finflow-ledger/internal/api/types"
	"finflow-ledger/internal/money"
	"finflow-ledger/internal/service"
	"finflow-ledger/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	responder
	identity  *Identity
	service   service.WalletService
	formatter *money.Formatter
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, identity *Identity, formatter *money.Formatter, logger *slog.Logger) *WalletHandler {
	if formatter == nil {
		formatter = money.Default()
	}
	return &WalletHandler{
		responder: responder{logger: logger},
		identity:  identity,
		service:   svc,
		formatter: formatter,
	}
}

// List returns the caller's wallets. type=select (the default) gives the
// picker form, type=summary the dashboard cards for month/year and type=full
// the complete wallet objects.
// GET /wallets
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, false)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	switch r.URL.Query().Get("type") {
	case "summary":
		period, err := periodFromQuery(r)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		summaries, err := h.service.Summaries(r.Context(), userID, period)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		out := make([]types.WalletSummary, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, types.NewWalletSummary(s, h.formatter))
		}
		h.respondWithJSON(w, http.StatusOK, types.NewListResponse(out))

	case "", "select":
		wallets, err := h.service.List(r.Context(), userID)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		out := make([]types.WalletOption, 0, len(wallets))
		for _, wl := range wallets {
			out = append(out, types.WalletOption{ID: wl.ID, Name: wl.Name})
		}
		h.respondWithJSON(w, http.StatusOK, types.NewListResponse(out))

	case "full":
		wallets, err := h.service.List(r.Context(), userID)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		out := make([]types.Wallet, 0, len(wallets))
		for i := range wallets {
			out = append(out, types.NewWallet(&wallets[i]))
		}
		h.respondWithJSON(w, http.StatusOK, types.NewListResponse(out))

	default:
		h.respondWithError(w, r, util.InvalidInput("type"))
	}
}

// Create adds a wallet for the signed-in user.
// POST /wallets
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var in service.WalletInput
	if err := decodeBody(r, &in); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	wallet, err := h.service.Create(r.Context(), userID, in)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.logger.Info("Wallet created", "wallet_id", wallet.ID, "user_id", userID)
	h.respondWithJSON(w, http.StatusCreated, types.NewWallet(wallet))
}

// Get returns one wallet.
// GET /wallets/{walletID}
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	wallet, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "walletID"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewWallet(wallet))
}

// Update edits a wallet.
// PUT /wallets/{walletID}
func (h *WalletHandler) Update(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var in service.WalletInput
	if err := decodeBody(r, &in); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	wallet, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "walletID"), in)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewWallet(wallet))
}

// Delete removes a wallet without transactions.
// DELETE /wallets/{walletID}
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "walletID")); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
