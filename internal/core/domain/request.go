package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of an expense request.
type RequestStatus string

const (
	StatusDraft     RequestStatus = "DRAFT"
	StatusSubmitted RequestStatus = "SUBMITTED"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusPaid      RequestStatus = "PAID"
)

// allowedTransitions is the complete edge set of the request state machine.
// Draft is implicit: it is a draft row, never a stored request status.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusRejected:  {StatusSubmitted},
	StatusApproved:  {StatusPaid},
}

// IsValid reports whether s is one of the known statuses.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether the edge s -> next exists.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Version is the optimistic concurrency token of a request.
// It is only ever compared for equality; the store decides how it advances.
type Version int64

// Request is a submitted expense claim.
type Request struct {
	RequestID     string          `json:"requestID"`
	EmployeeID    string          `json:"employeeID"`
	EmployeeName  string          `json:"employeeName,omitempty"`
	CategoryID    string          `json:"categoryID"`
	CategoryName  string          `json:"categoryName,omitempty"`
	Subject       string          `json:"subject"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DateOfExpense time.Time       `json:"dateOfExpense"`
	Status        RequestStatus   `json:"status"`
	Version       Version         `json:"version"`
	Fingerprint   string          `json:"-"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`

	// Child records, populated by read paths when present.
	Approval  *ApprovalRecord  `json:"approval,omitempty"`
	Rejection *RejectionRecord `json:"rejection,omitempty"`
	Payment   *PaymentRecord   `json:"payment,omitempty"`
}

// ComputeFingerprint derives the duplicate-submission key of a claim. Two claims
// collide only when every field matches exactly; amounts compare numerically.
// Each field is length-prefixed so no byte inside a field can fake a boundary.
func ComputeFingerprint(employeeID, subject, description string, amount decimal.Decimal, categoryID string, dateOfExpense time.Time) string {
	parts := []string{
		employeeID,
		subject,
		description,
		amount.String(),
		categoryID,
		DateOnly(dateOfExpense).Format(time.DateOnly),
	}
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strconv.Itoa(len(p)) + ":" + p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// FingerprintOf returns the fingerprint a draft would produce when submitted.
func FingerprintOf(d Draft) string {
	return ComputeFingerprint(d.EmployeeID, d.Subject, d.Description, d.Amount, d.CategoryID, d.DateOfExpense)
}
