// internal/service/resolver.go
package service

import (
	"context"
	"errors"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/util"
)

// Resolver provides the fallback wallet and category for transactions that
// arrive without usable references.
type Resolver struct {
	deps *Deps
}

// NewResolver creates a new Resolver.
func NewResolver(deps *Deps) *Resolver {
	return &Resolver{deps: deps}
}

// ResolveDefaultWalletAndCategory returns the user's "Default Wallet" and the
// category to book against: categoryID when it names one of the user's own
// categories, the "Other" category otherwise. Missing defaults are created.
//
// Each find-or-create runs outside any transaction: a unique-key violation
// means another request created the row first, and the winner is re-read.
func (r *Resolver) ResolveDefaultWalletAndCategory(ctx context.Context, userID string, categoryID *string) (string, string, error) {
	wallet, err := r.defaultWallet(ctx, userID)
	if err != nil {
		return "", "", err
	}

	if categoryID != nil && *categoryID != "" {
		c, err := r.deps.Categories.GetCategoryByID(ctx, r.deps.DBExecutor, userID, *categoryID)
		switch {
		case err == nil:
			return wallet.ID, c.ID, nil
		case !errors.Is(err, util.ErrNotFound):
			return "", "", util.NewStoreError("get category", err)
		}
	}

	category, err := r.defaultCategory(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return wallet.ID, category.ID, nil
}

func (r *Resolver) defaultWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	q := r.deps.DBExecutor
	return findOrCreate("default wallet",
		func() (*domain.Wallet, error) {
			return r.deps.Wallets.GetWalletByName(ctx, q, userID, domain.DefaultWalletName)
		},
		func() (*domain.Wallet, error) {
			w := domain.NewWallet(userID, domain.DefaultWalletName)
			return w, r.deps.Wallets.CreateWallet(ctx, q, w)
		},
	)
}

func (r *Resolver) defaultCategory(ctx context.Context, userID string) (*domain.Category, error) {
	q := r.deps.DBExecutor
	return findOrCreate("default category",
		func() (*domain.Category, error) {
			return r.deps.Categories.GetCategoryByName(ctx, q, userID, domain.DefaultCategoryName)
		},
		func() (*domain.Category, error) {
			c := domain.NewDefaultCategory(userID)
			return c, r.deps.Categories.CreateCategory(ctx, q, c)
		},
	)
}

// findOrCreate looks a row up by its natural key and creates it when absent.
// Losing a creation race to a concurrent request is not an error.
func findOrCreate[T any](what string, find, create func() (*T, error)) (*T, error) {
	found, err := find()
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, util.NewStoreError("get "+what, err)
	}

	created, err := create()
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, util.ErrDuplicateEntry) {
		return nil, util.NewStoreError("create "+what, err)
	}

	found, err = find()
	if err != nil {
		return nil, &util.StoreError{Op: "refetch " + what, Err: err}
	}
	return found, nil
}
