// internal/repository/sqlstore/category_store.go
package sqlstore

import (
	"context"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/repository"
)

// CategoryRepository implements repository.CategoryRepository.
type CategoryRepository struct{}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository() repository.CategoryRepository {
	return &CategoryRepository{}
}

const categoryColumns = `id, user_id, name, color, created_at`

// CreateCategory inserts a new category using the provided DBExecutor.
func (r *CategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, c *domain.Category) error {
	query := q.Rebind(`INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.CreatedAt.UTC())
	return translate(err, "failed to create category %q", c.Name)
}

// GetCategoryByID retrieves one of the user's categories.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, q repository.DBExecutor, userID, id string) (*domain.Category, error) {
	var c domain.Category
	query := q.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE id = ? AND user_id = ?`)
	if err := q.GetContext(ctx, &c, query, id, userID); err != nil {
		return nil, translate(err, "failed to get category %s", id)
	}
	return &c, nil
}

// GetCategoryByName retrieves one of the user's categories by its unique name.
func (r *CategoryRepository) GetCategoryByName(ctx context.Context, q repository.DBExecutor, userID, name string) (*domain.Category, error) {
	var c domain.Category
	query := q.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? AND name = ?`)
	if err := q.GetContext(ctx, &c, query, userID, name); err != nil {
		return nil, translate(err, "failed to get category %q", name)
	}
	return &c, nil
}

// ListCategories returns the user's categories sorted by name.
func (r *CategoryRepository) ListCategories(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Category, error) {
	categories := []domain.Category{}
	query := q.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? ORDER BY name`)
	if err := q.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, translate(err, "failed to list categories")
	}
	return categories, nil
}
