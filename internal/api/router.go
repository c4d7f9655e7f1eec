// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finflow-ledger/internal/api/handler"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Identity     *handler.Identity
	Transactions *handler.TransactionHandler
	Wallets      *handler.WalletHandler
	Categories   *handler.CategoryHandler
	Summary      *handler.SummaryHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Identity.Middleware)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.Transactions.List)
			r.Post("/", h.Transactions.Create)
			r.Get("/{transactionID}", h.Transactions.Get)
			r.Put("/{transactionID}", h.Transactions.Update)
			r.Delete("/{transactionID}", h.Transactions.Delete)
		})

		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", h.Wallets.List)
			r.Post("/", h.Wallets.Create)
			r.Get("/{walletID}", h.Wallets.Get)
			r.Put("/{walletID}", h.Wallets.Update)
			r.Delete("/{walletID}", h.Wallets.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Post("/", h.Categories.Create)
		})

		r.Get("/summary", h.Summary.Get)
	})

	return r
}
