// internal/repository/user_repo.go
package repository

import (
	"context"

	"finflow-ledger/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByEmail retrieves the user behind a session identity.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// GetUserByPhone retrieves the user behind an external integration identity.
	GetUserByPhone(ctx context.Context, q DBExecutor, phone string) (*domain.User, error)
}
