// internal/repository/sqlstore/wallet_store.go
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/repository"
)

// WalletRepository implements repository.WalletRepository.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

const walletColumns = `id, user_id, name, card_brand, card_color, card_limit, billing_day, display_number, created_at, updated_at`

// walletRow is the flat table shape; card columns are all NULL for cash wallets.
type walletRow struct {
	ID            string              `db:"id"`
	UserID        string              `db:"user_id"`
	Name          string              `db:"name"`
	CardBrand     sql.NullString      `db:"card_brand"`
	CardColor     sql.NullString      `db:"card_color"`
	CardLimit     decimal.NullDecimal `db:"card_limit"`
	BillingDay    sql.NullInt32       `db:"billing_day"`
	DisplayNumber sql.NullString      `db:"display_number"`
	CreatedAt     time.Time           `db:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at"`
}

func (r walletRow) toDomain() domain.Wallet {
	w := domain.Wallet{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.CardBrand.Valid {
		w.Card = &domain.CreditCard{
			Brand:         domain.CardBrand(r.CardBrand.String),
			Color:         r.CardColor.String,
			Limit:         r.CardLimit.Decimal,
			BillingDay:    int(r.BillingDay.Int32),
			DisplayNumber: r.DisplayNumber.String,
		}
	}
	return w
}

// cardArgs returns the card column values in walletColumns order.
func cardArgs(c *domain.CreditCard) []interface{} {
	if c == nil {
		return []interface{}{nil, nil, nil, nil, nil}
	}
	return []interface{}{string(c.Brand), c.Color, c.Limit, c.BillingDay, c.DisplayNumber}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, w *domain.Wallet) error {
	query := q.Rebind(`INSERT INTO wallets (` + walletColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	args := append([]interface{}{w.ID, w.UserID, w.Name}, cardArgs(w.Card)...)
	args = append(args, w.CreatedAt.UTC(), w.UpdatedAt.UTC())
	_, err := q.ExecContext(ctx, query, args...)
	return translate(err, "failed to create wallet %q", w.Name)
}

// GetWalletByID retrieves one of the user's wallets.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, userID, id string) (*domain.Wallet, error) {
	var row walletRow
	query := q.Rebind(`SELECT ` + walletColumns + ` FROM wallets WHERE id = ? AND user_id = ?`)
	if err := q.GetContext(ctx, &row, query, id, userID); err != nil {
		return nil, translate(err, "failed to get wallet %s", id)
	}
	w := row.toDomain()
	return &w, nil
}

// GetWalletByName retrieves one of the user's wallets by its unique name.
func (r *WalletRepository) GetWalletByName(ctx context.Context, q repository.DBExecutor, userID, name string) (*domain.Wallet, error) {
	var row walletRow
	query := q.Rebind(`SELECT ` + walletColumns + ` FROM wallets WHERE user_id = ? AND name = ?`)
	if err := q.GetContext(ctx, &row, query, userID, name); err != nil {
		return nil, translate(err, "failed to get wallet %q", name)
	}
	w := row.toDomain()
	return &w, nil
}

// ListWallets returns the user's wallets in creation order.
func (r *WalletRepository) ListWallets(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Wallet, error) {
	var rows []walletRow
	query := q.Rebind(`SELECT ` + walletColumns + ` FROM wallets WHERE user_id = ? ORDER BY created_at, name`)
	if err := q.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, translate(err, "failed to list wallets")
	}
	wallets := make([]domain.Wallet, 0, len(rows))
	for _, row := range rows {
		wallets = append(wallets, row.toDomain())
	}
	return wallets, nil
}

// UpdateWallet rewrites the name and card columns of an existing wallet.
func (r *WalletRepository) UpdateWallet(ctx context.Context, q repository.DBExecutor, w *domain.Wallet) error {
	query := q.Rebind(`UPDATE wallets
              SET name = ?, card_brand = ?, card_color = ?, card_limit = ?, billing_day = ?, display_number = ?, updated_at = ?
              WHERE id = ? AND user_id = ?`)
	args := append([]interface{}{w.Name}, cardArgs(w.Card)...)
	args = append(args, w.UpdatedAt.UTC(), w.ID, w.UserID)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, "failed to update wallet %s", w.ID)
	}
	return expectOne(res)
}

// DeleteWallet removes one of the user's wallets.
func (r *WalletRepository) DeleteWallet(ctx context.Context, q repository.DBExecutor, userID, id string) error {
	query := q.Rebind(`DELETE FROM wallets WHERE id = ? AND user_id = ?`)
	res, err := q.ExecContext(ctx, query, id, userID)
	if err != nil {
		return translate(err, "failed to delete wallet %s", id)
	}
	return expectOne(res)
}
