package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelDraft converts a domain Draft to a model Draft
func ToModelDraft(d domain.Draft) models.Draft {
	return models.Draft{
		DraftID:       d.DraftID,
		EmployeeID:    d.EmployeeID,
		CategoryID:    d.CategoryID,
		Subject:       d.Subject,
		Description:   d.Description,
		Amount:        d.Amount,
		DateOfExpense: d.DateOfExpense,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainDraft converts a model Draft to a domain Draft
func ToDomainDraft(m models.Draft) domain.Draft {
	return domain.Draft{
		DraftID:       m.DraftID,
		EmployeeID:    m.EmployeeID,
		CategoryID:    m.CategoryID,
		Subject:       m.Subject,
		Description:   m.Description,
		Amount:        m.Amount,
		DateOfExpense: domain.DateOnly(m.DateOfExpense),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToModelRequest converts a domain Request to a model Request. Child records are stored separately.
func ToModelRequest(d domain.Request) models.Request {
	return models.Request{
		RequestID:     d.RequestID,
		EmployeeID:    d.EmployeeID,
		CategoryID:    d.CategoryID,
		Subject:       d.Subject,
		Description:   d.Description,
		Amount:        d.Amount,
		DateOfExpense: d.DateOfExpense,
		Status:        string(d.Status),
		Version:       int64(d.Version),
		Fingerprint:   d.Fingerprint,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainRequest converts a model Request to a domain Request
func ToDomainRequest(m models.Request) domain.Request {
	r := domain.Request{
		RequestID:     m.RequestID,
		EmployeeID:    m.EmployeeID,
		CategoryID:    m.CategoryID,
		Subject:       m.Subject,
		Description:   m.Description,
		Amount:        m.Amount,
		DateOfExpense: domain.DateOnly(m.DateOfExpense),
		Status:        domain.RequestStatus(m.Status),
		Version:       domain.Version(m.Version),
		Fingerprint:   m.Fingerprint,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
	if m.EmployeeName != nil {
		r.EmployeeName = *m.EmployeeName
	}
	if m.CategoryName != nil {
		r.CategoryName = *m.CategoryName
	}
	return r
}

// ToModelStatusHistory converts a domain StatusHistoryEntry to a model StatusHistory
func ToModelStatusHistory(d domain.StatusHistoryEntry) models.StatusHistory {
	return models.StatusHistory{
		EntryID:    d.EntryID,
		RequestID:  d.RequestID,
		Seq:        d.Seq,
		FromStatus: string(d.FromStatus),
		ToStatus:   string(d.ToStatus),
		ActorID:    d.ActorID,
		ActorName:  d.ActorName,
		Remarks:    d.Remarks,
		ChangedAt:  d.ChangedAt,
	}
}

// ToDomainStatusHistory converts a model StatusHistory to a domain StatusHistoryEntry
func ToDomainStatusHistory(m models.StatusHistory) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		EntryID:    m.EntryID,
		RequestID:  m.RequestID,
		Seq:        m.Seq,
		FromStatus: domain.RequestStatus(m.FromStatus),
		ToStatus:   domain.RequestStatus(m.ToStatus),
		ActorID:    m.ActorID,
		ActorName:  m.ActorName,
		Remarks:    m.Remarks,
		ChangedAt:  m.ChangedAt,
	}
}

// ToModelApproval converts a domain ApprovalRecord to a model Approval
func ToModelApproval(d domain.ApprovalRecord) models.Approval {
	return models.Approval{
		RequestID:     d.RequestID,
		ManagerID:     d.ManagerID,
		ManagerName:   d.ManagerName,
		Comments:      d.Comments,
		TotalAmount:   d.TotalAmount,
		PaymentStatus: string(d.PaymentStatus),
		ApprovedAt:    d.ApprovedAt,
	}
}

// ToDomainApproval converts a model Approval to a domain ApprovalRecord
func ToDomainApproval(m models.Approval) domain.ApprovalRecord {
	return domain.ApprovalRecord{
		RequestID:     m.RequestID,
		ManagerID:     m.ManagerID,
		ManagerName:   m.ManagerName,
		Comments:      m.Comments,
		TotalAmount:   m.TotalAmount,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		ApprovedAt:    m.ApprovedAt,
	}
}

// ToDomainRejection converts a model Rejection to a domain RejectionRecord
func ToDomainRejection(m models.Rejection) domain.RejectionRecord {
	return domain.RejectionRecord(m)
}

// ToDomainPayment converts a model Payment to a domain PaymentRecord
func ToDomainPayment(m models.Payment) domain.PaymentRecord {
	return domain.PaymentRecord(m)
}
