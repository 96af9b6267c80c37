package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is a pre-submission expense entry, editable only by its owner.
type Draft struct {
	DraftID       string          `json:"draftID"`
	EmployeeID    string          `json:"employeeID"`
	CategoryID    string          `json:"categoryID"`
	Subject       string          `json:"subject"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DateOfExpense time.Time       `json:"dateOfExpense"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
