package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApproveRequest defines the optional manager comment on approval.
type ApproveRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// RejectRequest defines the mandatory rejection comment.
type RejectRequest struct {
	Comment string `json:"comment" binding:"required,max=1000"`
}

// PayRequest defines the optional finance notes recorded on payment.
type PayRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=1000"`
}

// ListRequestsParams defines query parameters for listing requests.
type ListRequestsParams struct {
	Status     *string    `form:"status" binding:"omitempty,oneof=SUBMITTED APPROVED REJECTED PAID"`
	EmployeeID *string    `form:"employeeID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken  *string    `form:"nextToken"`
}

// ListTeamPendingParams pages through a manager's approval queue.
type ListTeamPendingParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ApprovalResponse projects an approval record.
type ApprovalResponse struct {
	ManagerID     string          `json:"managerID"`
	ManagerName   string          `json:"managerName"`
	Comments      *string         `json:"comments,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus string          `json:"paymentStatus"`
	ApprovedAt    time.Time       `json:"approvedAt"`
}

// RejectionResponse projects a rejection record.
type RejectionResponse struct {
	ManagerID   string    `json:"managerID"`
	ManagerName string    `json:"managerName"`
	Comment     string    `json:"comment"`
	RejectedAt  time.Time `json:"rejectedAt"`
}

// PaymentResponse projects a payment record.
type PaymentResponse struct {
	ProcessedBy string    `json:"processedBy"`
	Notes       *string   `json:"notes,omitempty"`
	PaymentDate time.Time `json:"paymentDate"`
}

// RequestResponse defines the data returned for an expense request.
type RequestResponse struct {
	RequestID     string             `json:"requestID"`
	EmployeeID    string             `json:"employeeID"`
	EmployeeName  string             `json:"employeeName,omitempty"`
	CategoryID    string             `json:"categoryID"`
	CategoryName  string             `json:"categoryName,omitempty"`
	Subject       string             `json:"subject"`
	Description   string             `json:"description"`
	Amount        decimal.Decimal    `json:"amount"`
	DateOfExpense string             `json:"dateOfExpense"`
	Status        string             `json:"status"`
	Version       int64              `json:"version"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	Approval      *ApprovalResponse  `json:"approval,omitempty"`
	Rejection     *RejectionResponse `json:"rejection,omitempty"`
	Payment       *PaymentResponse   `json:"payment,omitempty"`
}

// ListRequestsResponse wraps a page of requests.
type ListRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// HistoryEntryResponse defines the data returned for an audit entry.
type HistoryEntryResponse struct {
	Seq        int64     `json:"seq"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ActorID    string    `json:"actorID"`
	ActorName  string    `json:"actorName"`
	Remarks    *string   `json:"remarks,omitempty"`
	ChangedAt  time.Time `json:"changedAt"`
}

// ListHistoryResponse wraps a request's audit trail.
type ListHistoryResponse struct {
	RequestID string                 `json:"requestID"`
	Entries   []HistoryEntryResponse `json:"entries"`
}

// ToRequestResponse converts a domain.Request to RequestResponse DTO.
func ToRequestResponse(r *domain.Request) RequestResponse {
	resp := RequestResponse{
		RequestID:     r.RequestID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		CategoryID:    r.CategoryID,
		CategoryName:  r.CategoryName,
		Subject:       r.Subject,
		Description:   r.Description,
		Amount:        r.Amount,
		DateOfExpense: r.DateOfExpense.Format(time.DateOnly),
		Status:        string(r.Status),
		Version:       int64(r.Version),
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
	if a := r.Approval; a != nil {
		resp.Approval = &ApprovalResponse{
			ManagerID:     a.ManagerID,
			ManagerName:   a.ManagerName,
			Comments:      a.Comments,
			TotalAmount:   a.TotalAmount,
			PaymentStatus: string(a.PaymentStatus),
			ApprovedAt:    a.ApprovedAt,
		}
	}
	if rj := r.Rejection; rj != nil {
		resp.Rejection = &RejectionResponse{
			ManagerID:   rj.ManagerID,
			ManagerName: rj.ManagerName,
			Comment:     rj.Comment,
			RejectedAt:  rj.RejectedAt,
		}
	}
	if p := r.Payment; p != nil {
		resp.Payment = &PaymentResponse{
			ProcessedBy: p.ProcessedBy,
			Notes:       p.Notes,
			PaymentDate: p.PaymentDate,
		}
	}
	return resp
}

// ToRequestResponses converts a slice of requests.
func ToRequestResponses(reqs []domain.Request) []RequestResponse {
	out := make([]RequestResponse, len(reqs))
	for i := range reqs {
		out[i] = ToRequestResponse(&reqs[i])
	}
	return out
}

// ToListHistoryResponse converts an audit trail.
func ToListHistoryResponse(requestID string, entries []domain.StatusHistoryEntry) ListHistoryResponse {
	resp := ListHistoryResponse{RequestID: requestID, Entries: make([]HistoryEntryResponse, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = HistoryEntryResponse{
			Seq:        e.Seq,
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			ActorID:    e.ActorID,
			ActorName:  e.ActorName,
			Remarks:    e.Remarks,
			ChangedAt:  e.ChangedAt,
		}
	}
	return resp
}
