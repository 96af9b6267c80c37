package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// ReportingSvc defines finance reporting operations
type ReportingSvc interface {
	// MonthlySummary aggregates the given calendar month. Finance and Admin only.
	MonthlySummary(ctx context.Context, caller domain.Caller, year, month int) (*domain.MonthlySummary, error)

	// Dashboard combines the month's totals with the overall approval backlog
	// and the largest claims of the month. Finance and Admin only.
	Dashboard(ctx context.Context, caller domain.Caller, year, month int) (*domain.DashboardStats, error)
}
