package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// DraftReaderSvc defines read operations for drafts
type DraftReaderSvc interface {
	GetDraft(ctx context.Context, caller domain.Caller, draftID string) (*domain.Draft, error)
	ListDrafts(ctx context.Context, caller domain.Caller, limit, offset int) ([]domain.Draft, error)
}

// DraftWriterSvc defines write operations for drafts
type DraftWriterSvc interface {
	CreateDraft(ctx context.Context, caller domain.Caller, req dto.CreateDraftRequest) (*domain.Draft, error)
	UpdateDraft(ctx context.Context, caller domain.Caller, draftID string, req dto.UpdateDraftRequest) (*domain.Draft, error)
	DeleteDraft(ctx context.Context, caller domain.Caller, draftID string) error
}

// DraftSvcFacade combines all draft-related service interfaces
type DraftSvcFacade interface {
	DraftReaderSvc
	DraftWriterSvc
}
