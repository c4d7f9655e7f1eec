package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow-ledger/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(wallet string, typ domain.TransactionType, value string, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:       wallet + "-" + value,
		WalletID: wallet,
		Type:     typ,
		Value:    d(value),
		Date:     at,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", msg, want, got)
}

var (
	march = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	april = time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)
	now   = time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)
)

func history() []domain.Transaction {
	return []domain.Transaction{
		tx("w1", domain.TransactionTypeIncome, "1000", march),
		tx("w1", domain.TransactionTypeExpense, "200", march),
		tx("w1", domain.TransactionTypeIncome, "100", april),
		tx("w1", domain.TransactionTypeExpense, "300", april),
		tx("w2", domain.TransactionTypeExpense, "50", april),
		tx("w2", domain.TransactionTypeToReceive, "80", april),
		tx("w2", domain.TransactionTypeToPay, "30", april),
		tx("w1", domain.TransactionTypeToPay, "500", march),
	}
}

func TestAggregate_AllTime(t *testing.T) {
	s := Aggregate(history(), nil, ModeAll, now)

	assertDecimal(t, "1100", s.Income, "income")
	assertDecimal(t, "550", s.Expense, "expense")
	assertDecimal(t, "550", s.Balance, "balance")
	assertDecimal(t, "550", s.Economy, "economy")
	assertDecimal(t, "80", s.ToReceive, "to receive")
	assertDecimal(t, "530", s.ToPay, "to pay")
	assertDecimal(t, "-450", s.FutureBalance, "future balance")
}

func TestAggregate_MonthKeepsLifetimeBalance(t *testing.T) {
	s := Aggregate(history(), nil, ModeMonth, now)

	assertDecimal(t, "100", s.Income, "month income")
	assertDecimal(t, "350", s.Expense, "month expense")
	// Lifetime position, not the month's income minus expense (-250).
	assertDecimal(t, "550", s.Balance, "balance")
	// Economy follows the month window and is clamped at zero.
	assertDecimal(t, "0", s.Economy, "economy")
	assertDecimal(t, "80", s.ToReceive, "month to receive")
	assertDecimal(t, "30", s.ToPay, "month to pay")
	assertDecimal(t, "50", s.FutureBalance, "future balance")
}

func TestAggregate_MonthEconomyPositive(t *testing.T) {
	txs := append(history(), tx("w2", domain.TransactionTypeIncome, "1000", april))

	s := Aggregate(txs, nil, ModeMonth, now)

	assertDecimal(t, "750", s.Economy, "economy = 1100 - 350")
	assertDecimal(t, "1550", s.Balance, "balance")
}

func TestAggregate_WalletSubset(t *testing.T) {
	s := Aggregate(history(), []string{"w2"}, ModeAll, now)

	assertDecimal(t, "0", s.Income, "income")
	assertDecimal(t, "50", s.Expense, "expense")
	assertDecimal(t, "-50", s.Balance, "balance")
	assertDecimal(t, "0", s.Economy, "economy")
	assertDecimal(t, "50", s.FutureBalance, "future balance")

	all := Aggregate(history(), []string{}, ModeAll, now)
	assertDecimal(t, "1100", all.Income, "empty subset means all wallets")
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, nil, ModeMonth, now)
	assert.True(t, s.Balance.IsZero())
	assert.True(t, s.Economy.IsZero())
	assert.True(t, s.FutureBalance.IsZero())
}

func TestAggregate_Deterministic(t *testing.T) {
	first := Aggregate(history(), []string{"w1"}, ModeMonth, now)
	second := Aggregate(history(), []string{"w1"}, ModeMonth, now)
	assert.Equal(t, first, second)
}

func TestAggregatePerWallet(t *testing.T) {
	card := domain.CreditCard{
		Brand:         domain.CardBrandElo,
		Color:         "#ff0000",
		Limit:         d("1000"),
		BillingDay:    5,
		DisplayNumber: "1234 5678 9012 3456",
	}
	wallets := []domain.Wallet{
		{ID: "w1", Name: "Cash"},
		{ID: "w2", Name: "Card", Card: &card},
		{ID: "w3", Name: "Empty"},
	}
	byWallet := map[string][]domain.Transaction{}
	for _, h := range history() {
		byWallet[h.WalletID] = append(byWallet[h.WalletID], h)
	}

	got := AggregatePerWallet(wallets, byWallet, Period{Month: 4, Year: 2024})
	require.Len(t, got, 3)

	w1 := got[0]
	assert.Equal(t, "w1", w1.ID)
	assert.Equal(t, domain.WalletKindCash, w1.Kind)
	assert.Nil(t, w1.AvailableCredit)
	assertDecimal(t, "1100", w1.TotalIncome, "w1 lifetime income")
	assertDecimal(t, "500", w1.TotalExpense, "w1 lifetime expense")
	assertDecimal(t, "100", w1.PeriodIncome, "w1 april income")
	assertDecimal(t, "300", w1.PeriodExpense, "w1 april expense")
	assertDecimal(t, "600", w1.Balance, "w1 balance")
	require.NotNil(t, w1.LastTransaction)
	assert.Equal(t, april, w1.LastTransaction.Date)
	assert.Equal(t, domain.TransactionTypeExpense, w1.LastTransaction.Type)
	assertDecimal(t, "300", w1.LastTransaction.Amount, "w1 last amount")

	w2 := got[1]
	assert.Equal(t, domain.WalletKindCreditCard, w2.Kind)
	require.NotNil(t, w2.Card)
	assert.Equal(t, "1234 5678 9012 3456", w2.Card.DisplayNumber)
	require.NotNil(t, w2.AvailableCredit)
	assertDecimal(t, "950", *w2.AvailableCredit, "w2 available credit")

	w3 := got[2]
	assert.Nil(t, w3.LastTransaction)
	assert.True(t, w3.Balance.IsZero())
}

func TestAggregatePerWallet_LastTransactionDoesNotReorderInput(t *testing.T) {
	newest := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx("w1", domain.TransactionTypeIncome, "10", newest),
		tx("w1", domain.TransactionTypeExpense, "20", march),
	}
	snapshot := append([]domain.Transaction(nil), txs...)

	got := AggregatePerWallet([]domain.Wallet{{ID: "w1"}}, map[string][]domain.Transaction{"w1": txs}, AllTime)

	require.NotNil(t, got[0].LastTransaction)
	assert.Equal(t, newest, got[0].LastTransaction.Date)
	assert.Equal(t, snapshot, txs)
	assertDecimal(t, "10", got[0].PeriodIncome, "all-time period equals lifetime")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeAll, m)

	m, err = ParseMode("month")
	assert.NoError(t, err)
	assert.Equal(t, ModeMonth, m)

	_, err = ParseMode("week")
	assert.Error(t, err)
}
