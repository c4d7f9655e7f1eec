// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the direction of a transaction. Values are always
// positive; the type carries the sign.
type TransactionType string

const (
	TransactionTypeIncome    TransactionType = "income"
	TransactionTypeExpense   TransactionType = "expense"
	TransactionTypeToReceive TransactionType = "to_receive"
	TransactionTypeToPay     TransactionType = "to_pay"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeToReceive, TransactionTypeToPay:
		return true
	}
	return false
}

// Amounts are stored as NUMERIC(14,2): whole cents, twelve integer digits.
const amountScale = 2

// MaxTransactionValue is the largest amount the ledger can store.
var MaxTransactionValue = decimal.RequireFromString("999999999999.99")

// ValidAmount reports whether v is positive, representable in whole cents and
// no larger than MaxTransactionValue.
func ValidAmount(v decimal.Decimal) bool {
	return v.IsPositive() &&
		v.LessThanOrEqual(MaxTransactionValue) &&
		v.Equal(v.Truncate(amountScale))
}

// Transaction represents a financial transaction record.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	WalletID    string          `db:"wallet_id" json:"wallet_id"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	Description string          `db:"description" json:"description"`
	Value       decimal.Decimal `db:"value" json:"value"`
	Type        TransactionType `db:"type" json:"type"`
	Date        time.Time       `db:"date" json:"date"`             // When the transaction happened
	CreatedAt   time.Time       `db:"created_at" json:"created_at"` // Timestamp of record creation
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(
	userID, walletID, categoryID, description string,
	value decimal.Decimal,
	txType TransactionType,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		WalletID:    walletID,
		CategoryID:  categoryID,
		Description: description,
		Value:       value,
		Type:        txType,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}
