// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/report"
	"finflow-ledger/internal/repository"
	"finflow-ledger/internal/util"
)

// TransactionService defines the interface for transaction-related business logic.
type TransactionService interface {
	// RecordExternal books a transaction sent by the phone-identified integration.
	RecordExternal(ctx context.Context, phone string, raw RawTransaction) (*domain.Transaction, error)
	// Create books a transaction for a signed-in owner.
	Create(ctx context.Context, userID string, in SessionTransactionInput) (*domain.Transaction, error)
	// List returns the user's transactions in period, newest first.
	List(ctx context.Context, userID string, period report.Period, walletIDs []string) ([]TransactionView, error)
	Get(ctx context.Context, userID, id string) (*domain.Transaction, error)
	Update(ctx context.Context, userID, id string, in SessionTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}

// WalletRef is the short wallet form attached to listed transactions.
type WalletRef struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Kind domain.WalletKind `json:"type"`
}

// TransactionView is a transaction joined with its wallet and category.
type TransactionView struct {
	domain.Transaction
	Wallet   *WalletRef       `json:"wallet,omitempty"`
	Category *domain.Category `json:"category,omitempty"`
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	deps     *Deps
	users    *UserResolver
	resolver *Resolver
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(deps *Deps, users *UserResolver, resolver *Resolver) TransactionService {
	return &transactionService{deps: deps, users: users, resolver: resolver}
}

func (s *transactionService) RecordExternal(ctx context.Context, phone string, raw RawTransaction) (*domain.Transaction, error) {
	valid, err := ValidateExternalTransactionInput(raw, s.deps.now())
	if err != nil {
		return nil, err
	}

	user, err := s.users.Resolve(ctx, Principal{Phone: phone})
	if err != nil {
		return nil, err
	}

	walletID, categoryID, err := s.resolver.ResolveDefaultWalletAndCategory(ctx, user.ID, valid.CategoryID)
	if err != nil {
		return nil, util.WithUser(err, user.ID)
	}

	tx := domain.NewTransaction(user.ID, walletID, categoryID, valid.Description, valid.Value, valid.Type, valid.Date)
	if err := s.deps.Transactions.CreateTransaction(ctx, s.deps.DBExecutor, tx); err != nil {
		return nil, util.WithUser(util.NewStoreError("create external transaction", err), user.ID)
	}
	return tx, nil
}

func (s *transactionService) Create(ctx context.Context, userID string, in SessionTransactionInput) (*domain.Transaction, error) {
	valid, err := ValidateSessionTransactionInput(in)
	if err != nil {
		return nil, err
	}

	var tx *domain.Transaction
	err = s.deps.inTx(ctx, "create transaction", func(q repository.DBExecutor) error {
		if err := s.checkReferences(ctx, q, userID, valid.WalletID, *valid.CategoryID); err != nil {
			return err
		}
		tx = domain.NewTransaction(userID, valid.WalletID, *valid.CategoryID, valid.Description, valid.Value, valid.Type, valid.Date)
		return util.NewStoreError("create transaction", s.deps.Transactions.CreateTransaction(ctx, q, tx))
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, userID string, period report.Period, walletIDs []string) ([]TransactionView, error) {
	filter := repository.TransactionFilter{UserID: userID, WalletIDs: walletIDs, Desc: true}
	if !period.IsAllTime() {
		filter.From, filter.To = period.Range(s.deps.location())
	}

	var (
		txs        []domain.Transaction
		wallets    []domain.Wallet
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = s.deps.Transactions.ListTransactions(gctx, s.deps.DBExecutor, filter)
		return util.NewStoreError("list transactions", err)
	})
	g.Go(func() (err error) {
		wallets, err = s.deps.Wallets.ListWallets(gctx, s.deps.DBExecutor, userID)
		return util.NewStoreError("list wallets", err)
	})
	g.Go(func() (err error) {
		categories, err = s.deps.Categories.ListCategories(gctx, s.deps.DBExecutor, userID)
		return util.NewStoreError("list categories", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	walletsByID := make(map[string]*WalletRef, len(wallets))
	for i := range wallets {
		w := &wallets[i]
		walletsByID[w.ID] = &WalletRef{ID: w.ID, Name: w.Name, Kind: w.Kind()}
	}
	categoriesByID := make(map[string]*domain.Category, len(categories))
	for i := range categories {
		categoriesByID[categories[i].ID] = &categories[i]
	}

	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		s.deps.localize(&tx)
		views = append(views, TransactionView{
			Transaction: tx,
			Wallet:      walletsByID[tx.WalletID],
			Category:    categoriesByID[tx.CategoryID],
		})
	}
	return views, nil
}

func (s *transactionService) Get(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	tx, err := s.deps.Transactions.GetTransactionByID(ctx, s.deps.DBExecutor, userID, id)
	if err != nil {
		return nil, util.NewStoreError("get transaction", err)
	}
	s.deps.localize(tx)
	return tx, nil
}

func (s *transactionService) Update(ctx context.Context, userID, id string, in SessionTransactionInput) (*domain.Transaction, error) {
	valid, err := ValidateSessionTransactionInput(in)
	if err != nil {
		return nil, err
	}

	var tx *domain.Transaction
	err = s.deps.inTx(ctx, "update transaction", func(q repository.DBExecutor) error {
		existing, err := s.deps.Transactions.GetTransactionByID(ctx, q, userID, id)
		if err != nil {
			return util.NewStoreError("get transaction", err)
		}
		if err := s.checkReferences(ctx, q, userID, valid.WalletID, *valid.CategoryID); err != nil {
			return err
		}

		existing.WalletID = valid.WalletID
		existing.CategoryID = *valid.CategoryID
		existing.Description = valid.Description
		existing.Value = valid.Value
		existing.Type = valid.Type
		existing.Date = valid.Date
		tx = existing
		return util.NewStoreError("update transaction", s.deps.Transactions.UpdateTransaction(ctx, q, tx))
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, userID, id string) error {
	return util.NewStoreError("delete transaction",
		s.deps.Transactions.DeleteTransaction(ctx, s.deps.DBExecutor, userID, id))
}

// checkReferences makes sure the wallet and category both belong to userID.
func (s *transactionService) checkReferences(ctx context.Context, q repository.DBExecutor, userID, walletID, categoryID string) error {
	if _, err := s.deps.Wallets.GetWalletByID(ctx, q, userID, walletID); err != nil {
		return wrapMissing("wallet", walletID, util.NewStoreError("get wallet", err))
	}
	if _, err := s.deps.Categories.GetCategoryByID(ctx, q, userID, categoryID); err != nil {
		return wrapMissing("category", categoryID, util.NewStoreError("get category", err))
	}
	return nil
}

// wrapMissing names the missing resource while keeping util.ErrNotFound matchable.
func wrapMissing(kind, id string, err error) error {
	if util.IsError(err, util.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, util.ErrNotFound)
	}
	return err
}
