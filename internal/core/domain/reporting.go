package domain

import (
	"github.com/shopspring/decimal"
)

// CategoryTotal is one row of a monthly summary.
type CategoryTotal struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	RequestCount int64           `json:"requestCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// MonthlySummary aggregates non-rejected requests created in one calendar month.
type MonthlySummary struct {
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	Categories           []CategoryTotal `json:"categories"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	PendingApprovalCount int64           `json:"pendingApprovalCount"`
}

// DashboardStats is the finance landing view for one calendar month.
type DashboardStats struct {
	Year             int
	Month            int
	MonthlyTotal     decimal.Decimal
	PendingApprovals int64
	ByCategory       []CategoryTotal
	TopClaims        []Request
}
