// internal/api/types/response.go
package types

import (
	"time"

	"github.com/shopspring/decimal"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/money"
	"finflow-ledger/internal/report"
)

// ListResponse wraps every collection the API returns.
// T represents the type of data contained in the 'Data' slice.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// NewListResponse builds a ListResponse; a nil slice is rendered as [].
func NewListResponse[T any](data []T) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Data: data, Count: len(data)}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Wallet is the JSON form of a wallet. Card fields are omitted for cash wallets.
type Wallet struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          domain.WalletKind `json:"type"`
	Brand         domain.CardBrand  `json:"brand,omitempty"`
	Color         string            `json:"color,omitempty"`
	Limit         *decimal.Decimal  `json:"limit,omitempty"`
	BillingDay    int               `json:"billing_day,omitempty"`
	DisplayNumber string            `json:"display_number,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewWallet converts a domain wallet.
func NewWallet(w *domain.Wallet) Wallet {
	out := Wallet{
		ID:        w.ID,
		Name:      w.Name,
		Type:      w.Kind(),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if c := w.Card; c != nil {
		limit := c.Limit
		out.Brand = c.Brand
		out.Color = c.Color
		out.Limit = &limit
		out.BillingDay = c.BillingDay
		out.DisplayNumber = c.DisplayNumber
	}
	return out
}

// WalletOption is the short form used by wallet pickers.
type WalletOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WalletSummary is one wallet card of the dashboard.
type WalletSummary struct {
	Wallet
	TotalIncome     decimal.Decimal         `json:"total_income"`
	TotalExpense    decimal.Decimal         `json:"total_expense"`
	PeriodIncome    decimal.Decimal         `json:"period_income"`
	PeriodExpense   decimal.Decimal         `json:"period_expense"`
	Balance         decimal.Decimal         `json:"balance"`
	BalanceDisplay  string                  `json:"balance_display"`
	AvailableCredit *decimal.Decimal        `json:"available_credit,omitempty"`
	LastTransaction *report.LastTransaction `json:"last_transaction"`
}

// NewWalletSummary converts an aggregated wallet summary.
func NewWalletSummary(s report.WalletSummary, f *money.Formatter) WalletSummary {
	w := domain.Wallet{ID: s.ID, Name: s.Name, Card: s.Card}
	base := NewWallet(&w)
	base.CreatedAt, base.UpdatedAt = time.Time{}, time.Time{}
	return WalletSummary{
		Wallet:          base,
		TotalIncome:     s.TotalIncome,
		TotalExpense:    s.TotalExpense,
		PeriodIncome:    s.PeriodIncome,
		PeriodExpense:   s.PeriodExpense,
		Balance:         s.Balance,
		BalanceDisplay:  f.Format(s.Balance),
		AvailableCredit: s.AvailableCredit,
		LastTransaction: s.LastTransaction,
	}
}

// Summary is the dashboard aggregate plus locale-formatted strings.
type Summary struct {
	report.Summary
	Mode    report.Mode       `json:"mode"`
	Display map[string]string `json:"display"`
}

// NewSummary renders s with f.
func NewSummary(s report.Summary, mode report.Mode, f *money.Formatter) Summary {
	return Summary{
		Summary: s,
		Mode:    mode,
		Display: map[string]string{
			"income":         f.Format(s.Income),
			"expense":        f.Format(s.Expense),
			"balance":        f.Format(s.Balance),
			"economy":        f.Format(s.Economy),
			"to_receive":     f.Format(s.ToReceive),
			"to_pay":         f.Format(s.ToPay),
			"future_balance": f.Format(s.FutureBalance),
		},
	}
}
