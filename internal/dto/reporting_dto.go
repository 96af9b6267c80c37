package dto

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyReportParams selects the reporting month.
type MonthlyReportParams struct {
	Year  int `form:"year" binding:"required,min=2000,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// MonthlySummaryResponse is the monthly finance summary.
type MonthlySummaryResponse struct {
	domain.MonthlySummary
}

// DashboardResponse is the finance dashboard for one month.
type DashboardResponse struct {
	Year             int                    `json:"year"`
	Month            int                    `json:"month"`
	MonthlyTotal     decimal.Decimal        `json:"monthlyTotal"`
	PendingApprovals int64                  `json:"pendingApprovals"`
	ByCategory       []domain.CategoryTotal `json:"byCategory"`
	TopClaims        []RequestResponse      `json:"topClaims"`
}

// ToDashboardResponse converts domain.DashboardStats.
func ToDashboardResponse(d *domain.DashboardStats) DashboardResponse {
	return DashboardResponse{
		Year:             d.Year,
		Month:            d.Month,
		MonthlyTotal:     d.MonthlyTotal,
		PendingApprovals: d.PendingApprovals,
		ByCategory:       d.ByCategory,
		TopClaims:        ToRequestResponses(d.TopClaims),
	}
}
