// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/report"
	"finflow-ledger/internal/repository"
	"finflow-ledger/internal/util"
)

// WalletInput is the body of wallet create and update requests. Card fields
// are read only when Type is credit_card.
type WalletInput struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Brand      string          `json:"brand"`
	Color      string          `json:"color"`
	Limit      decimal.Decimal `json:"limit"`
	BillingDay int             `json:"billingDay"`
}

// kind maps the requested type onto a WalletKind. "wallet" is accepted as a
// legacy spelling of cash.
func (in WalletInput) kind() (domain.WalletKind, error) {
	switch strings.TrimSpace(in.Type) {
	case "", string(domain.WalletKindCash), "wallet":
		return domain.WalletKindCash, nil
	case string(domain.WalletKindCreditCard):
		return domain.WalletKindCreditCard, nil
	}
	return "", util.InvalidInput("type")
}

// card validates and returns the card part of the input, or nil for cash.
func (in WalletInput) card() (*domain.CreditCard, error) {
	kind, err := in.kind()
	if err != nil || kind == domain.WalletKindCash {
		return nil, err
	}
	c := &domain.CreditCard{
		Brand:      domain.CardBrand(strings.ToLower(strings.TrimSpace(in.Brand))),
		Color:      in.Color,
		Limit:      in.Limit,
		BillingDay: in.BillingDay,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// checkDefaultWalletKind keeps the wallet external transactions fall back to a
// cash wallet.
func checkDefaultWalletKind(name string, card *domain.CreditCard) error {
	if card != nil && name == domain.DefaultWalletName {
		return util.InvalidInput("type")
	}
	return nil
}

// WalletService defines the interface for wallet-related business logic.
type WalletService interface {
	Create(ctx context.Context, userID string, in WalletInput) (*domain.Wallet, error)
	Get(ctx context.Context, userID, id string) (*domain.Wallet, error)
	List(ctx context.Context, userID string) ([]domain.Wallet, error)
	Update(ctx context.Context, userID, id string, in WalletInput) (*domain.Wallet, error)
	// Delete removes a wallet that no transaction references.
	Delete(ctx context.Context, userID, id string) error
	// Summaries reports every wallet of the user with lifetime and period totals.
	Summaries(ctx context.Context, userID string, period report.Period) ([]report.WalletSummary, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	deps *Deps
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(deps *Deps) WalletService {
	return &walletService{deps: deps}
}

func (s *walletService) Create(ctx context.Context, userID string, in WalletInput) (*domain.Wallet, error) {
	name, err := domain.NormalizeWalletName(in.Name)
	if err != nil {
		return nil, err
	}
	card, err := in.card()
	if err != nil {
		return nil, err
	}
	if err := checkDefaultWalletKind(name, card); err != nil {
		return nil, err
	}

	var w *domain.Wallet
	err = s.deps.inTx(ctx, "create wallet", func(q repository.DBExecutor) error {
		if err := s.ensureNameFree(ctx, q, userID, name, ""); err != nil {
			return err
		}
		if card != nil {
			w = domain.NewCardWallet(userID, name, *card)
		} else {
			w = domain.NewWallet(userID, name)
		}
		return conflictOnDuplicate(util.NewStoreError("create wallet", s.deps.Wallets.CreateWallet(ctx, q, w)))
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *walletService) Get(ctx context.Context, userID, id string) (*domain.Wallet, error) {
	w, err := s.deps.Wallets.GetWalletByID(ctx, s.deps.DBExecutor, userID, id)
	if err != nil {
		return nil, util.NewStoreError("get wallet", err)
	}
	return w, nil
}

func (s *walletService) List(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.deps.Wallets.ListWallets(ctx, s.deps.DBExecutor, userID)
	if err != nil {
		return nil, util.NewStoreError("list wallets", err)
	}
	return wallets, nil
}

func (s *walletService) Update(ctx context.Context, userID, id string, in WalletInput) (*domain.Wallet, error) {
	name, err := domain.NormalizeWalletName(in.Name)
	if err != nil {
		return nil, err
	}
	card, err := in.card()
	if err != nil {
		return nil, err
	}
	if err := checkDefaultWalletKind(name, card); err != nil {
		return nil, err
	}

	var w *domain.Wallet
	err = s.deps.inTx(ctx, "update wallet", func(q repository.DBExecutor) error {
		existing, err := s.deps.Wallets.GetWalletByID(ctx, q, userID, id)
		if err != nil {
			return util.NewStoreError("get wallet", err)
		}
		if err := s.ensureNameFree(ctx, q, userID, name, existing.ID); err != nil {
			return err
		}

		// The display number is assigned once and survives edits.
		if card != nil {
			if existing.Card != nil && existing.Card.DisplayNumber != "" {
				card.DisplayNumber = existing.Card.DisplayNumber
			} else {
				card.DisplayNumber = domain.GenerateDisplayNumber()
			}
		}
		existing.Name = name
		existing.Card = card
		existing.UpdatedAt = s.deps.now().UTC()
		w = existing
		return conflictOnDuplicate(util.NewStoreError("update wallet", s.deps.Wallets.UpdateWallet(ctx, q, w)))
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *walletService) Delete(ctx context.Context, userID, id string) error {
	return s.deps.inTx(ctx, "delete wallet", func(q repository.DBExecutor) error {
		if _, err := s.deps.Wallets.GetWalletByID(ctx, q, userID, id); err != nil {
			return util.NewStoreError("get wallet", err)
		}
		n, err := s.deps.Transactions.CountByWallet(ctx, q, userID, id)
		if err != nil {
			return util.NewStoreError("count wallet transactions", err)
		}
		if n > 0 {
			return fmt.Errorf("wallet %s has %d transactions: %w", id, n, util.ErrConflict)
		}
		return util.NewStoreError("delete wallet", s.deps.Wallets.DeleteWallet(ctx, q, userID, id))
	})
}

func (s *walletService) Summaries(ctx context.Context, userID string, period report.Period) ([]report.WalletSummary, error) {
	var (
		wallets []domain.Wallet
		txs     []domain.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wallets, err = s.deps.Wallets.ListWallets(gctx, s.deps.DBExecutor, userID)
		return util.NewStoreError("list wallets", err)
	})
	g.Go(func() (err error) {
		txs, err = s.deps.Transactions.ListTransactions(gctx, s.deps.DBExecutor, repository.TransactionFilter{UserID: userID})
		return util.NewStoreError("list transactions", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byWallet := make(map[string][]domain.Transaction, len(wallets))
	for _, tx := range txs {
		s.deps.localize(&tx)
		byWallet[tx.WalletID] = append(byWallet[tx.WalletID], tx)
	}
	return report.AggregatePerWallet(wallets, byWallet, period), nil
}

// ensureNameFree fails with util.ErrConflict when another wallet of the user
// already uses name. selfID is the wallet being renamed, if any.
func (s *walletService) ensureNameFree(ctx context.Context, q repository.DBExecutor, userID, name, selfID string) error {
	other, err := s.deps.Wallets.GetWalletByName(ctx, q, userID, name)
	switch {
	case errors.Is(err, util.ErrNotFound):
		return nil
	case err != nil:
		return util.NewStoreError("get wallet by name", err)
	case other.ID == selfID:
		return nil
	}
	return fmt.Errorf("wallet %q: %w", name, util.ErrConflict)
}

// conflictOnDuplicate reports a unique-key violation as util.ErrConflict.
func conflictOnDuplicate(err error) error {
	if errors.Is(err, util.ErrDuplicateEntry) {
		return fmt.Errorf("%w: %w", util.ErrConflict, err)
	}
	return err
}
