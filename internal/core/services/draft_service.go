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
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

// draftService manages pre-submission drafts. Drafts are private to their owner.
type draftService struct {
	BaseService
	draftRepo    portsrepo.DraftRepositoryFacade
	categoryRepo portsrepo.CategoryReader
}

// NewDraftService creates a new draft service.
func NewDraftService(draftRepo portsrepo.DraftRepositoryFacade, categoryRepo portsrepo.CategoryReader) portssvc.DraftSvcFacade {
	return &draftService{
		draftRepo:    draftRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.DraftSvcFacade = (*draftService)(nil)

func normalizeDraftRequest(req dto.CreateDraftRequest) dto.CreateDraftRequest {
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Description = strings.TrimSpace(req.Description)
	req.DateOfExpense = domain.DateOnly(req.DateOfExpense)
	return req
}

// checkCategory makes sure the draft points at a category that can still be used.
func (s *draftService) checkCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, categoryID)
		}
		return err
	}
	if !category.IsActive {
		return fmt.Errorf("%w: category %s is inactive", apperrors.ErrValidation, categoryID)
	}
	return nil
}

func (s *draftService) ownedDraft(ctx context.Context, caller domain.Caller, draftID string) (*domain.Draft, error) {
	draft, err := s.draftRepo.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.EmployeeID != caller.EmployeeID {
		return nil, apperrors.NewNotFoundError("draft " + draftID)
	}
	return draft, nil
}

// CreateDraft stores a new draft for the caller.
func (s *draftService) CreateDraft(ctx context.Context, caller domain.Caller, req dto.CreateDraftRequest) (*domain.Draft, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleEmployee, domain.RoleManager); err != nil {
		return nil, err
	}
	req = normalizeDraftRequest(req)
	if err := dto.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	draft := domain.Draft{
		DraftID:       uuid.NewString(),
		EmployeeID:    caller.EmployeeID,
		CategoryID:    req.CategoryID,
		Subject:       req.Subject,
		Description:   req.Description,
		Amount:        req.Amount,
		DateOfExpense: req.DateOfExpense,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.draftRepo.SaveDraft(ctx, draft); err != nil {
		s.LogError(ctx, err, "Failed to save draft", slog.String("employee_id", caller.EmployeeID))
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.LogInfo(ctx, "Draft created", slog.String("draft_id", draft.DraftID))
	return &draft, nil
}

// GetDraft returns one of the caller's drafts.
func (s *draftService) GetDraft(ctx context.Context, caller domain.Caller, draftID string) (*domain.Draft, error) {
	return s.ownedDraft(ctx, caller, draftID)
}

// ListDrafts returns the caller's drafts, most recently edited first.
func (s *draftService) ListDrafts(ctx context.Context, caller domain.Caller, limit, offset int) ([]domain.Draft, error) {
	if offset < 0 {
		offset = 0
	}
	drafts, err := s.draftRepo.ListDraftsByEmployee(ctx, caller.EmployeeID, pagination.ClampLimit(limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list drafts", slog.String("employee_id", caller.EmployeeID))
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// UpdateDraft replaces the editable fields of one of the caller's drafts.
func (s *draftService) UpdateDraft(ctx context.Context, caller domain.Caller, draftID string, req dto.UpdateDraftRequest) (*domain.Draft, error) {
	draft, err := s.ownedDraft(ctx, caller, draftID)
	if err != nil {
		return nil, err
	}
	normalized := normalizeDraftRequest(dto.CreateDraftRequest(req))
	if err := dto.ValidateStruct(normalized); err != nil {
		return nil, err
	}
	if normalized.CategoryID != draft.CategoryID {
		if err := s.checkCategory(ctx, normalized.CategoryID); err != nil {
			return nil, err
		}
	}

	draft.CategoryID = normalized.CategoryID
	draft.Subject = normalized.Subject
	draft.Description = normalized.Description
	draft.Amount = normalized.Amount
	draft.DateOfExpense = normalized.DateOfExpense
	draft.LastUpdatedAt = time.Now().UTC()

	if err := s.draftRepo.UpdateDraft(ctx, *draft); err != nil {
		s.LogError(ctx, err, "Failed to update draft", slog.String("draft_id", draftID))
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return draft, nil
}

// DeleteDraft discards one of the caller's drafts.
func (s *draftService) DeleteDraft(ctx context.Context, caller domain.Caller, draftID string) error {
	if _, err := s.ownedDraft(ctx, caller, draftID); err != nil {
		return err
	}
	if err := s.draftRepo.DeleteDraft(ctx, draftID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	s.LogInfo(ctx, "Draft deleted", slog.String("draft_id", draftID))
	return nil
}
