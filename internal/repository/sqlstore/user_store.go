// internal/repository/sqlstore/user_store.go
package sqlstore

import (
	"context"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/repository"
)

// UserRepository implements repository.UserRepository.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository. The executor is passed to
// each method, so the repository itself holds no connection.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

const userColumns = `id, email, phone, created_at`

// CreateUser inserts a new user using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := q.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query, user.ID, user.Email, user.Phone, user.CreatedAt.UTC())
	return translate(err, "failed to create user")
}

// GetUserByEmail retrieves a user by the session email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := q.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	if err := q.GetContext(ctx, &user, query, email); err != nil {
		return nil, translate(err, "failed to get user by email")
	}
	return &user, nil
}

// GetUserByPhone retrieves a user by the integration phone number.
func (r *UserRepository) GetUserByPhone(ctx context.Context, q repository.DBExecutor, phone string) (*domain.User, error) {
	var user domain.User
	query := q.Rebind(`SELECT ` + userColumns + ` FROM users WHERE phone = ?`)
	if err := q.GetContext(ctx, &user, query, phone); err != nil {
		return nil, translate(err, "failed to get user by phone")
	}
	return &user, nil
}
