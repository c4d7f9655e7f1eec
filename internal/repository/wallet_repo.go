// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"finflow-ledger/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
// Every lookup is scoped to the owning user; another user's wallet is reported
// as util.ErrNotFound.
type WalletRepository interface {
	// CreateWallet adds a new wallet. A name already used by the same user
	// yields util.ErrDuplicateEntry.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	GetWalletByID(ctx context.Context, q DBExecutor, userID, id string) (*domain.Wallet, error)
	GetWalletByName(ctx context.Context, q DBExecutor, userID, name string) (*domain.Wallet, error)
	// ListWallets returns the user's wallets in creation order.
	ListWallets(ctx context.Context, q DBExecutor, userID string) ([]domain.Wallet, error)
	// UpdateWallet overwrites name and card fields of an existing wallet.
	UpdateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	DeleteWallet(ctx context.Context, q DBExecutor, userID, id string) error
}
