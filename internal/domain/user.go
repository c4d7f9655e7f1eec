// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns wallets, categories and transactions. Users are provisioned
// outside this service; the ledger only looks them up.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"` // Identity for the external integration path
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewUser creates a new User instance.
func NewUser(email string, phone *string) *User {
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}
