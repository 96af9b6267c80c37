package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// GetCategoryTotals sums non-rejected requests created in [from, to) per category
	GetCategoryTotals(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error)

	// CountPendingApprovals counts requests created in [from, to) still awaiting a manager
	CountPendingApprovals(ctx context.Context, from, to time.Time) (int64, error)

	// CountAllPendingApprovals counts every request awaiting a manager regardless of age
	CountAllPendingApprovals(ctx context.Context) (int64, error)

	// GetTopClaims returns up to limit requests created in [from, to), largest amount first
	GetTopClaims(ctx context.Context, from, to time.Time, limit int) ([]domain.Request, error)
}
