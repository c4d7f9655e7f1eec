// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"finflow-ledger/internal/domain"
)

// TransactionFilter narrows ListTransactions. Zero values leave a dimension
// unfiltered.
type TransactionFilter struct {
	UserID    string
	WalletIDs []string
	From      time.Time // inclusive
	To        time.Time // inclusive
	Desc      bool      // newest first; ascending by date otherwise
}

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record to the database using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	GetTransactionByID(ctx context.Context, q DBExecutor, userID, id string) (*domain.Transaction, error)
	// ListTransactions retrieves the user's transactions ordered by date.
	ListTransactions(ctx context.Context, q DBExecutor, filter TransactionFilter) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	DeleteTransaction(ctx context.Context, q DBExecutor, userID, id string) error
	// CountByWallet reports how many transactions reference a wallet.
	CountByWallet(ctx context.Context, q DBExecutor, userID, walletID string) (int, error)
}
