// internal/service/ingest.go
package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/money"
	"finflow-ledger/internal/util"
)

// RawTransaction is an externally submitted transaction exactly as decoded
// from JSON. Fields stay raw so validation can tell a number from a string.
type RawTransaction struct {
	Description json.RawMessage `json:"description"`
	Value       json.RawMessage `json:"value"`
	Type        json.RawMessage `json:"type"`
	CategoryID  *string         `json:"categoryId"`
}

// ValidatedTransaction is external input that passed validation.
type ValidatedTransaction struct {
	Description string
	Value       decimal.Decimal
	Type        domain.TransactionType
	Date        time.Time
	CategoryID  *string
	WalletID    string // session path only
}

// ValidateExternalTransactionInput checks raw field by field, stopping at the
// first failure: description, then value. The type falls back to expense
// unless it is exactly income or expense, and the date is the receive time.
func ValidateExternalTransactionInput(raw RawTransaction, receivedAt time.Time) (ValidatedTransaction, error) {
	description, ok := rawString(raw.Description)
	if !ok || strings.TrimSpace(description) == "" {
		return ValidatedTransaction{}, util.InvalidInput("description")
	}

	value, ok := rawPositiveDecimal(raw.Value)
	if !ok {
		return ValidatedTransaction{}, util.InvalidInput("value")
	}

	txType := domain.TransactionTypeExpense
	if s, ok := rawString(raw.Type); ok && domain.TransactionType(s) == domain.TransactionTypeIncome {
		txType = domain.TransactionTypeIncome
	}

	return ValidatedTransaction{
		Description: strings.TrimSpace(description),
		Value:       value,
		Type:        txType,
		Date:        receivedAt,
		CategoryID:  raw.CategoryID,
	}, nil
}

// SessionTransactionInput is a transaction submitted by a signed-in owner.
// DisplayValue accepts masked currency input ("R$ 1.234,56") and is only
// read when Value is absent.
type SessionTransactionInput struct {
	Description  json.RawMessage `json:"description"`
	Value        json.RawMessage `json:"value"`
	DisplayValue string          `json:"displayValue"`
	Type         string          `json:"type"`
	Date         string          `json:"date"`
	WalletID     string          `json:"walletId"`
	CategoryID   string          `json:"categoryId"`
}

// ValidateSessionTransactionInput applies the session path rules: every
// transaction type is accepted and an RFC 3339 date is mandatory. Wallet and
// category ownership is checked later against the store.
func ValidateSessionTransactionInput(in SessionTransactionInput) (ValidatedTransaction, error) {
	description, ok := rawString(in.Description)
	if !ok || strings.TrimSpace(description) == "" {
		return ValidatedTransaction{}, util.InvalidInput("description")
	}

	var value decimal.Decimal
	if isAbsent(in.Value) && in.DisplayValue != "" {
		value = money.Parse(in.DisplayValue)
		ok = domain.ValidAmount(value)
	} else {
		value, ok = rawPositiveDecimal(in.Value)
	}
	if !ok {
		return ValidatedTransaction{}, util.InvalidInput("value")
	}

	txType := domain.TransactionType(in.Type)
	if !txType.Valid() {
		return ValidatedTransaction{}, util.InvalidInput("type")
	}

	date, err := time.Parse(time.RFC3339, strings.TrimSpace(in.Date))
	if err != nil {
		return ValidatedTransaction{}, util.InvalidInput("date")
	}

	walletID := strings.TrimSpace(in.WalletID)
	if walletID == "" {
		return ValidatedTransaction{}, util.InvalidInput("walletId")
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	if categoryID == "" {
		return ValidatedTransaction{}, util.InvalidInput("categoryId")
	}

	return ValidatedTransaction{
		Description: strings.TrimSpace(description),
		Value:       value,
		Type:        txType,
		Date:        date,
		CategoryID:  &categoryID,
		WalletID:    walletID,
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func rawString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawPositiveDecimal accepts a JSON number or a string holding one that the
// ledger can store. NaN and infinities never parse; out-of-range magnitudes
// and sub-cent fractions are refused.
func rawPositiveDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return decimal.Zero, false
	}

	literal := string(trimmed)
	if trimmed[0] == '"' {
		s, ok := rawString(trimmed)
		if !ok {
			return decimal.Zero, false
		}
		literal = strings.TrimSpace(s)
	} else if !json.Valid(trimmed) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(literal)
	if err != nil || !domain.ValidAmount(d) {
		return decimal.Zero, false
	}
	return d, true
}
