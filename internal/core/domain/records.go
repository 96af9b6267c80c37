package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment sub-status tracked on an approval.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// ApprovalRecord is created once, when a request is approved.
// Only PaymentStatus changes afterwards.
type ApprovalRecord struct {
	RequestID     string          `json:"requestID"`
	ManagerID     string          `json:"managerID"`
	ManagerName   string          `json:"managerName"`
	Comments      *string         `json:"comments,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	ApprovedAt    time.Time       `json:"approvedAt"`
}

// RejectionRecord holds the latest rejection of a request.
type RejectionRecord struct {
	RequestID   string    `json:"requestID"`
	ManagerID   string    `json:"managerID"`
	ManagerName string    `json:"managerName"`
	Comment     string    `json:"comment"`
	RejectedAt  time.Time `json:"rejectedAt"`
}

// PaymentRecord is created once, when a request is paid.
type PaymentRecord struct {
	RequestID   string    `json:"requestID"`
	ProcessedBy string    `json:"processedBy"`
	Notes       *string   `json:"notes,omitempty"`
	PaymentDate time.Time `json:"paymentDate"`
}
