// Package money parses user-typed currency strings and renders amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with a locale's grouping, decimal separator and
// currency symbol. It is safe for concurrent use.
type Formatter struct {
	tag  language.Tag
	unit currency.Unit
}

// NewFormatter creates a Formatter for the given locale and currency.
func NewFormatter(tag language.Tag, unit currency.Unit) *Formatter {
	return &Formatter{tag: tag, unit: unit}
}

var defaultFormatter = NewFormatter(language.BrazilianPortuguese, currency.BRL)

// Format renders amount with the currency's minor-unit scale, e.g. "R$ 1.234,56".
func (f *Formatter) Format(amount decimal.Decimal) string {
	p := message.NewPrinter(f.tag)
	return p.Sprint(currency.Symbol(f.unit.Amount(amount.Round(2).InexactFloat64())))
}

// Default returns the pt-BR / BRL formatter.
func Default() *Formatter {
	return defaultFormatter
}

// Format renders amount in Brazilian reais.
func Format(amount decimal.Decimal) string {
	return defaultFormatter.Format(amount)
}

// Parse reads a display string the way a currency input field does: every
// non-digit is dropped and the remaining digits count cents. Input without
// digits yields zero.
func Parse(display string) decimal.Decimal {
	var b strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return decimal.Zero
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return cents.Shift(-2)
}
