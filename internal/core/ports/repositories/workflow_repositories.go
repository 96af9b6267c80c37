package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// RequestCursor marks the last row of a page in (created_at, request_id) descending order.
type RequestCursor struct {
	CreatedAt time.Time
	RequestID string
}

// RequestFilter narrows a request listing.
type RequestFilter struct {
	// AllVisible lifts the owner restriction; otherwise only OwnerIDs are returned.
	AllVisible bool
	OwnerIDs   []string

	EmployeeID *string
	Status     *domain.RequestStatus
	From       *time.Time
	To         *time.Time

	Limit  int
	Cursor *RequestCursor
}

// WorkflowReader defines read operations for requests and their audit trail.
type WorkflowReader interface {
	// FindRequestByID returns the request with its child records.
	FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error)

	// ListRequests returns requests ordered newest first.
	ListRequests(ctx context.Context, filter RequestFilter) ([]domain.Request, error)

	// ListHistory returns the audit trail of a request in append order.
	ListHistory(ctx context.Context, requestID string) ([]domain.StatusHistoryEntry, error)
}

// WorkflowTx is the write surface available inside one atomic workflow unit.
// It is the only way requests and their child records are mutated.
type WorkflowTx interface {
	FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error)
	DeleteDraft(ctx context.Context, draftID string) error

	// ExistsActiveFingerprint reports whether a non-rejected request other than
	// excludeRequestID carries fingerprint.
	ExistsActiveFingerprint(ctx context.Context, fingerprint string, excludeRequestID string) (bool, error)

	// InsertRequest stores a new request and returns its initial version.
	InsertRequest(ctx context.Context, req domain.Request) (domain.Version, error)

	FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error)

	// CompareAndSwapStatus moves the request to next only if its stored version still
	// equals expected, and returns the new version. A mismatch yields
	// apperrors.ErrConcurrentModification.
	CompareAndSwapStatus(ctx context.Context, requestID string, expected domain.Version, next domain.RequestStatus, actorID string, at time.Time) (domain.Version, error)

	InsertApproval(ctx context.Context, rec domain.ApprovalRecord) error
	MarkApprovalPaid(ctx context.Context, requestID string) error
	UpsertRejection(ctx context.Context, rec domain.RejectionRecord) error
	InsertPayment(ctx context.Context, rec domain.PaymentRecord) error

	// AppendHistory appends an audit entry; Seq is assigned by the store.
	AppendHistory(ctx context.Context, entry domain.StatusHistoryEntry) error
}

// WorkflowRepositoryFacade combines workflow reads with the transactional write path.
type WorkflowRepositoryFacade interface {
	WorkflowReader
	TransactionManager
}
