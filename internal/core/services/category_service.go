package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	repo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{repo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// ListCategories returns active categories. Admins may include inactive ones.
func (s *categoryService) ListCategories(ctx context.Context, caller domain.Caller, includeInactive bool) ([]domain.Category, error) {
	if includeInactive && caller.Role != domain.RoleAdmin {
		includeInactive = false
	}
	categories, err := s.repo.ListCategories(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetActiveCategory returns a category that may be used on new drafts.
func (s *categoryService) GetActiveCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, apperrors.NewNotFoundError("category " + categoryID)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, caller domain.Caller, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := dto.ValidateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.EmployeeID,
		},
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a category with this name already exists", err)
		}
		s.LogError(ctx, err, "Failed to save category", slog.String("name", category.Name))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// UpdateCategory renames or toggles a category. Existing requests keep their category.
func (s *categoryService) UpdateCategory(ctx context.Context, caller domain.Caller, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := dto.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = caller.EmployeeID

	if err := s.repo.UpdateCategory(ctx, *category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a category with this name already exists", err)
		}
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}
