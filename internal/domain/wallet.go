// internal/domain/wallet.go
package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations

	"finflow-ledger/internal/util"
)

// DefaultWalletName is the cash wallet lazily created for externally recorded transactions.
const DefaultWalletName = "Default Wallet"

const (
	minWalletNameLen = 3
	maxWalletNameLen = 100
)

// WalletKind tells cash accounts and credit cards apart.
type WalletKind string

const (
	WalletKindCash       WalletKind = "cash"
	WalletKindCreditCard WalletKind = "credit_card"
)

// CardBrand is the issuer network of a credit card wallet.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandElo        CardBrand = "elo"
	CardBrandHipercard  CardBrand = "hipercard"
	CardBrandDiners     CardBrand = "diners"
	CardBrandDiscover   CardBrand = "discover"
)

// Valid reports whether b is one of the supported brands.
func (b CardBrand) Valid() bool {
	switch b {
	case CardBrandVisa, CardBrandMastercard, CardBrandAmex, CardBrandElo,
		CardBrandHipercard, CardBrandDiners, CardBrandDiscover:
		return true
	}
	return false
}

// CreditCard holds the fields only a credit card wallet has.
type CreditCard struct {
	Brand         CardBrand
	Color         string
	Limit         decimal.Decimal
	BillingDay    int
	DisplayNumber string // Generated at creation, never changed afterwards
}

// Validate checks the user-supplied card fields, reporting the first bad one.
func (c *CreditCard) Validate() error {
	if !c.Brand.Valid() {
		return util.InvalidInput("brand")
	}
	c.Color = strings.TrimSpace(c.Color)
	if c.Color == "" {
		return util.InvalidInput("color")
	}
	if !c.Limit.IsPositive() {
		return util.InvalidInput("limit")
	}
	if c.BillingDay < 1 || c.BillingDay > 31 {
		return util.InvalidInput("billingDay")
	}
	return nil
}

// Wallet is either a cash account (Card == nil) or a credit card.
type Wallet struct {
	ID        string
	UserID    string
	Name      string
	Card      *CreditCard
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Kind derives the wallet kind from the presence of card data.
func (w *Wallet) Kind() WalletKind {
	if w.Card != nil {
		return WalletKindCreditCard
	}
	return WalletKindCash
}

// NewWallet creates a new cash Wallet instance.
func NewWallet(userID, name string) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCardWallet creates a credit card Wallet and assigns its display number.
func NewCardWallet(userID, name string, card CreditCard) *Wallet {
	w := NewWallet(userID, name)
	card.DisplayNumber = GenerateDisplayNumber()
	w.Card = &card
	return w
}

// NormalizeWalletName trims name and enforces its length bounds.
func NormalizeWalletName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < minWalletNameLen || n > maxWalletNameLen {
		return "", util.InvalidInput("name")
	}
	return name, nil
}

// GenerateDisplayNumber returns a masked card-like number: four groups of four digits.
func GenerateDisplayNumber() string {
	groups := make([]string, 4)
	for i := range groups {
		groups[i] = fmt.Sprintf("%d", 1000+rand.Intn(9000))
	}
	return strings.Join(groups, " ")
}
