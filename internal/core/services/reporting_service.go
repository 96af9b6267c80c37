package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// topClaimCount is how many of the month's largest claims the dashboard lists.
const topClaimCount = 5

// monthRange returns the UTC bounds [from, to) of a calendar month.
func monthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// MonthlySummary totals the non-rejected requests created in the given month per category.
func (s *reportingService) MonthlySummary(ctx context.Context, caller domain.Caller, year, month int) (*domain.MonthlySummary, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleFinance, domain.RoleAdmin); err != nil {
		return nil, err
	}
	from, to, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}

	totals, err := s.reportingRepo.GetCategoryTotals(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve category totals",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve category totals: %w", err)
	}
	pending, err := s.reportingRepo.CountPendingApprovals(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count pending approvals")
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}

	summary := &domain.MonthlySummary{
		Year:                 year,
		Month:                month,
		Categories:           totals,
		TotalAmount:          decimal.Zero,
		PendingApprovalCount: pending,
	}
	if summary.Categories == nil {
		summary.Categories = []domain.CategoryTotal{}
	}
	for _, t := range totals {
		summary.TotalAmount = summary.TotalAmount.Add(t.TotalAmount)
	}

	s.LogInfo(ctx, "Monthly summary generated",
		slog.Int("year", year),
		slog.Int("month", month),
		slog.Int("category_count", len(totals)))
	return summary, nil
}

// Dashboard reports the month's non-rejected total and category split, every
// request still awaiting a manager, and the month's five largest claims.
func (s *reportingService) Dashboard(ctx context.Context, caller domain.Caller, year, month int) (*domain.DashboardStats, error) {
	summary, err := s.MonthlySummary(ctx, caller, year, month)
	if err != nil {
		return nil, err
	}
	from, to, _ := monthRange(year, month)

	pending, err := s.reportingRepo.CountAllPendingApprovals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count pending approvals")
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}
	top, err := s.reportingRepo.GetTopClaims(ctx, from, to, topClaimCount)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve top claims")
		return nil, fmt.Errorf("failed to retrieve top claims: %w", err)
	}
	if top == nil {
		top = []domain.Request{}
	}

	return &domain.DashboardStats{
		Year:             year,
		Month:            month,
		MonthlyTotal:     summary.TotalAmount,
		PendingApprovals: pending,
		ByCategory:       summary.Categories,
		TopClaims:        top,
	}, nil
}
