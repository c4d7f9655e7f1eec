// internal/repository/category_repo.go
package repository

import (
	"context"

	"finflow-ledger/internal/domain"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// CreateCategory adds a new category. A name already used by the same
	// user yields util.ErrDuplicateEntry.
	CreateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// GetCategoryByID returns util.ErrNotFound when the category is missing or
	// owned by someone else.
	GetCategoryByID(ctx context.Context, q DBExecutor, userID, id string) (*domain.Category, error)
	GetCategoryByName(ctx context.Context, q DBExecutor, userID, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, q DBExecutor, userID string) ([]domain.Category, error)
}
