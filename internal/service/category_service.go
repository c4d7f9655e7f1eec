// internal/service/category_service.go
package service

import (
	"context"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/util"
)

// CategoryInput is the body of a category create request.
type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryService defines the interface for category-related business logic.
type CategoryService interface {
	Create(ctx context.Context, userID string, in CategoryInput) (*domain.Category, error)
	List(ctx context.Context, userID string) ([]domain.Category, error)
}

type categoryService struct {
	deps *Deps
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(deps *Deps) CategoryService {
	return &categoryService{deps: deps}
}

func (s *categoryService) Create(ctx context.Context, userID string, in CategoryInput) (*domain.Category, error) {
	c := domain.NewCategory(userID, in.Name, in.Color)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := s.deps.Categories.CreateCategory(ctx, s.deps.DBExecutor, c)
	if err != nil {
		return nil, conflictOnDuplicate(util.NewStoreError("create category", err))
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.deps.Categories.ListCategories(ctx, s.deps.DBExecutor, userID)
	if err != nil {
		return nil, util.NewStoreError("list categories", err)
	}
	return categories, nil
}
