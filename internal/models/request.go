package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is the row stored in the drafts table.
type Draft struct {
	DraftID       string          `db:"draft_id"`
	EmployeeID    string          `db:"employee_id"`
	CategoryID    string          `db:"category_id"`
	Subject       string          `db:"subject"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	DateOfExpense time.Time       `db:"date_of_expense"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}

// Request is the row stored in the requests table. Version is bumped on every
// status change and is the compare-and-swap token.
type Request struct {
	RequestID     string          `db:"request_id"`
	EmployeeID    string          `db:"employee_id"`
	EmployeeName  *string         `db:"employee_name"`
	CategoryID    string          `db:"category_id"`
	CategoryName  *string         `db:"category_name"`
	Subject       string          `db:"subject"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	DateOfExpense time.Time       `db:"date_of_expense"`
	Status        string          `db:"status"`
	Version       int64           `db:"version"`
	Fingerprint   string          `db:"fingerprint"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}

// StatusHistory is one row of the append-only request_status_history table.
type StatusHistory struct {
	EntryID    string    `db:"entry_id"`
	RequestID  string    `db:"request_id"`
	Seq        int64     `db:"seq"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorID    string    `db:"actor_id"`
	ActorName  string    `db:"actor_name"`
	Remarks    *string   `db:"remarks"`
	ChangedAt  time.Time `db:"changed_at"`
}

// Approval is the row stored in the approvals table.
type Approval struct {
	RequestID     string          `db:"request_id"`
	ManagerID     string          `db:"manager_id"`
	ManagerName   string          `db:"manager_name"`
	Comments      *string         `db:"comments"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentStatus string          `db:"payment_status"`
	ApprovedAt    time.Time       `db:"approved_at"`
}

// Rejection is the row stored in the rejections table.
type Rejection struct {
	RequestID   string    `db:"request_id"`
	ManagerID   string    `db:"manager_id"`
	ManagerName string    `db:"manager_name"`
	Comment     string    `db:"comment"`
	RejectedAt  time.Time `db:"rejected_at"`
}

// Payment is the row stored in the payments table.
type Payment struct {
	RequestID   string    `db:"request_id"`
	ProcessedBy string    `db:"processed_by"`
	Notes       *string   `db:"notes"`
	PaymentDate time.Time `db:"payment_date"`
}
