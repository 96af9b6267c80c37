package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// CategorySvcFacade defines category management operations
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, caller domain.Caller, includeInactive bool) ([]domain.Category, error)
	GetActiveCategory(ctx context.Context, categoryID string) (*domain.Category, error)
	CreateCategory(ctx context.Context, caller domain.Caller, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, caller domain.Caller, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
}
