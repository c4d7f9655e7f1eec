package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finflow-ledger/internal/domain"
)

// Mode is the dashboard display window.
type Mode string

const (
	ModeAll   Mode = "all"
	ModeMonth Mode = "month"
)

// ParseMode maps a query value to a Mode; empty means ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeMonth:
		return ModeMonth, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Totals are per-type sums over a set of transactions.
type Totals struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	ToReceive decimal.Decimal
	ToPay     decimal.Decimal
}

// Balance is income minus expense.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// Sum adds up transaction values by type.
func Sum(txs []domain.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			t.Income = t.Income.Add(tx.Value)
		case domain.TransactionTypeExpense:
			t.Expense = t.Expense.Add(tx.Value)
		case domain.TransactionTypeToReceive:
			t.ToReceive = t.ToReceive.Add(tx.Value)
		case domain.TransactionTypeToPay:
			t.ToPay = t.ToPay.Add(tx.Value)
		}
	}
	return t
}

// Summary is the dashboard aggregate for one display window.
type Summary struct {
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	Balance       decimal.Decimal `json:"balance"` // Always lifetime, whatever the window
	Economy       decimal.Decimal `json:"economy"`
	ToReceive     decimal.Decimal `json:"to_receive"`
	ToPay         decimal.Decimal `json:"to_pay"`
	FutureBalance decimal.Decimal `json:"future_balance"`
}

// Aggregate summarises txs restricted to walletIDs (empty means every wallet).
// In ModeMonth the window is the calendar month of now; txs must hold the
// user's full history so Balance can stay lifetime.
func Aggregate(txs []domain.Transaction, walletIDs []string, mode Mode, now time.Time) Summary {
	scoped := FilterByWallets(txs, walletIDs)
	lifetime := Sum(scoped)

	window := lifetime
	if mode == ModeMonth {
		window = Sum(FilterByPeriod(scoped, MonthOf(now), transactionDate))
	}

	return Summary{
		Income:        window.Income,
		Expense:       window.Expense,
		Balance:       lifetime.Balance(),
		Economy:       decimal.Max(window.Balance(), decimal.Zero),
		ToReceive:     window.ToReceive,
		ToPay:         window.ToPay,
		FutureBalance: window.ToReceive.Sub(window.ToPay),
	}
}

// FilterByWallets keeps transactions booked on one of walletIDs. An empty
// subset keeps everything.
func FilterByWallets(txs []domain.Transaction, walletIDs []string) []domain.Transaction {
	if len(walletIDs) == 0 {
		return txs
	}
	set := make(map[string]struct{}, len(walletIDs))
	for _, id := range walletIDs {
		set[id] = struct{}{}
	}
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, ok := set[tx.WalletID]; ok {
			out = append(out, tx)
		}
	}
	return out
}

// LastTransaction is the most recent movement on a wallet.
type LastTransaction struct {
	Amount decimal.Decimal        `json:"amount"`
	Date   time.Time              `json:"date"`
	Type   domain.TransactionType `json:"type"`
}

// WalletSummary is one wallet card of the dashboard.
type WalletSummary struct {
	ID              string
	Name            string
	Kind            domain.WalletKind
	Card            *domain.CreditCard
	TotalIncome     decimal.Decimal // lifetime
	TotalExpense    decimal.Decimal // lifetime
	PeriodIncome    decimal.Decimal
	PeriodExpense   decimal.Decimal
	Balance         decimal.Decimal // lifetime
	AvailableCredit *decimal.Decimal
	LastTransaction *LastTransaction
}

// AggregatePerWallet builds one WalletSummary per wallet, in wallet order.
// txsByWallet holds each wallet's full history.
func AggregatePerWallet(wallets []domain.Wallet, txsByWallet map[string][]domain.Transaction, period Period) []WalletSummary {
	out := make([]WalletSummary, 0, len(wallets))
	for _, w := range wallets {
		txs := txsByWallet[w.ID]
		lifetime := Sum(txs)
		inPeriod := Sum(FilterByPeriod(txs, period, transactionDate))

		ws := WalletSummary{
			ID:              w.ID,
			Name:            w.Name,
			Kind:            w.Kind(),
			Card:            w.Card,
			TotalIncome:     lifetime.Income,
			TotalExpense:    lifetime.Expense,
			PeriodIncome:    inPeriod.Income,
			PeriodExpense:   inPeriod.Expense,
			Balance:         lifetime.Balance(),
			LastTransaction: latest(txs),
		}
		if w.Card != nil {
			available := w.Card.Limit.Sub(lifetime.Expense)
			ws.AvailableCredit = &available
		}
		out = append(out, ws)
	}
	return out
}

func latest(txs []domain.Transaction) *LastTransaction {
	if len(txs) == 0 {
		return nil
	}
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	last := sorted[len(sorted)-1]
	return &LastTransaction{Amount: last.Value, Date: last.Date, Type: last.Type}
}

func transactionDate(tx domain.Transaction) time.Time { return tx.Date }
