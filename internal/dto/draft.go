package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDraftRequest defines the payload for saving a new draft.
type CreateDraftRequest struct {
	CategoryID    string          `json:"categoryID" binding:"required"`
	Subject       string          `json:"subject" binding:"required,max=200"`
	Description   string          `json:"description" binding:"required,max=2000"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	DateOfExpense time.Time       `json:"dateOfExpense" binding:"required,notfuture"`
}

// UpdateDraftRequest replaces the editable fields of a draft.
type UpdateDraftRequest CreateDraftRequest

// ListDraftsParams defines query parameters for listing drafts.
type ListDraftsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// DraftResponse defines the data returned for a draft.
type DraftResponse struct {
	DraftID       string          `json:"draftID"`
	CategoryID    string          `json:"categoryID"`
	Subject       string          `json:"subject"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DateOfExpense string          `json:"dateOfExpense"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListDraftsResponse wraps a page of drafts.
type ListDraftsResponse struct {
	Drafts []DraftResponse `json:"drafts"`
}

// ToDraftResponse converts a domain.Draft to DraftResponse DTO.
func ToDraftResponse(d *domain.Draft) DraftResponse {
	return DraftResponse{
		DraftID:       d.DraftID,
		CategoryID:    d.CategoryID,
		Subject:       d.Subject,
		Description:   d.Description,
		Amount:        d.Amount,
		DateOfExpense: d.DateOfExpense.Format(time.DateOnly),
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToListDraftsResponse converts a slice of drafts.
func ToListDraftsResponse(drafts []domain.Draft) ListDraftsResponse {
	resp := ListDraftsResponse{Drafts: make([]DraftResponse, len(drafts))}
	for i := range drafts {
		resp.Drafts[i] = ToDraftResponse(&drafts[i])
	}
	return resp
}
