// internal/domain/category.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"finflow-ledger/internal/util"
)

const (
	// DefaultCategoryName is the fallback category for transactions without a usable category.
	DefaultCategoryName = "Other"
	// DefaultCategoryColor is the neutral shade given to the fallback category.
	DefaultCategoryColor = "#cccccc"
)

// Category groups transactions for a single user.
type Category struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewCategory creates a new Category instance.
func NewCategory(userID, name, color string) *Category {
	return &Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
}

// NewDefaultCategory creates the "Other" fallback category for userID.
func NewDefaultCategory(userID string) *Category {
	return NewCategory(userID, DefaultCategoryName, DefaultCategoryColor)
}

// Validate checks the user-supplied category fields.
func (c *Category) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return util.InvalidInput("name")
	}
	c.Color = strings.TrimSpace(c.Color)
	if c.Color == "" {
		return util.InvalidInput("color")
	}
	return nil
}
