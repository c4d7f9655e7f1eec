// internal/repository/sqlstore/transaction_store.go
package sqlstore

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, user_id, wallet_id, category_id, description, value, type, date, created_at`

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, t *domain.Transaction) error {
	query := q.Rebind(`INSERT INTO transactions (` + transactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		t.ID, t.UserID, t.WalletID, t.CategoryID, t.Description, t.Value, string(t.Type), t.Date.UTC(), t.CreatedAt.UTC())
	return translate(err, "failed to create transaction")
}

// GetTransactionByID retrieves one of the user's transactions.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, userID, id string) (*domain.Transaction, error) {
	var t domain.Transaction
	query := q.Rebind(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ?`)
	if err := q.GetContext(ctx, &t, query, id, userID); err != nil {
		return nil, translate(err, "failed to get transaction %s", id)
	}
	return &t, nil
}

// ListTransactions retrieves the user's transactions matching filter.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, f repository.TransactionFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`)
	args := []interface{}{f.UserID}

	if len(f.WalletIDs) > 0 {
		sb.WriteString(` AND wallet_id IN (?)`)
		args = append(args, f.WalletIDs)
	}
	if !f.From.IsZero() {
		sb.WriteString(` AND date >= ?`)
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		sb.WriteString(` AND date <= ?`)
		args = append(args, f.To.UTC())
	}
	if f.Desc {
		sb.WriteString(` ORDER BY date DESC, created_at DESC`)
	} else {
		sb.WriteString(` ORDER BY date, created_at`)
	}

	query, args, err := sqlx.In(sb.String(), args...)
	if err != nil {
		return nil, translate(err, "failed to build transaction query")
	}

	txs := []domain.Transaction{}
	if err := q.SelectContext(ctx, &txs, q.Rebind(query), args...); err != nil {
		return nil, translate(err, "failed to list transactions")
	}
	return txs, nil
}

// UpdateTransaction rewrites the mutable fields of an existing transaction.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, t *domain.Transaction) error {
	query := q.Rebind(`UPDATE transactions
              SET wallet_id = ?, category_id = ?, description = ?, value = ?, type = ?, date = ?
              WHERE id = ? AND user_id = ?`)
	res, err := q.ExecContext(ctx, query,
		t.WalletID, t.CategoryID, t.Description, t.Value, string(t.Type), t.Date.UTC(), t.ID, t.UserID)
	if err != nil {
		return translate(err, "failed to update transaction %s", t.ID)
	}
	return expectOne(res)
}

// DeleteTransaction removes one of the user's transactions.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, userID, id string) error {
	query := q.Rebind(`DELETE FROM transactions WHERE id = ? AND user_id = ?`)
	res, err := q.ExecContext(ctx, query, id, userID)
	if err != nil {
		return translate(err, "failed to delete transaction %s", id)
	}
	return expectOne(res)
}

// CountByWallet reports how many of the user's transactions reference walletID.
func (r *TransactionRepository) CountByWallet(ctx context.Context, q repository.DBExecutor, userID, walletID string) (int, error) {
	var n int
	query := q.Rebind(`SELECT COUNT(*) FROM transactions WHERE user_id = ? AND wallet_id = ?`)
	if err := q.GetContext(ctx, &n, query, userID, walletID); err != nil {
		return 0, translate(err, "failed to count transactions of wallet %s", walletID)
	}
	return n, nil
}
