package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// DraftReader defines read operations for drafts
type DraftReader interface {
	FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error)
	ListDraftsByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.Draft, error)
}

// DraftWriter defines write operations for drafts
type DraftWriter interface {
	SaveDraft(ctx context.Context, draft domain.Draft) error
	UpdateDraft(ctx context.Context, draft domain.Draft) error
	DeleteDraft(ctx context.Context, draftID string) error
}

// DraftRepositoryFacade combines all draft-related repository interfaces
type DraftRepositoryFacade interface {
	DraftReader
	DraftWriter
}
