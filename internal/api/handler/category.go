// internal/api/handler/category.go
package handler

import (
	"log/slog"
	"net/http"

	"finflow-ledger/internal/api/types"
	"finflow-ledger/internal/service"
)

// CategoryHandler handles HTTP requests related to categories.
type CategoryHandler struct {
	responder
	identity *Identity
	service  service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc service.CategoryService, identity *Identity, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		responder: responder{logger: logger},
		identity:  identity,
		service:   svc,
	}
}

// List returns the caller's categories by name.
// GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, false)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	categories, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewListResponse(categories))
}

// Create adds a category.
// POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	r, userID, err := h.identity.resolve(r, true)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var in service.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	category, err := h.service.Create(r.Context(), userID, in)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, category)
}
