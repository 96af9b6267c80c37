package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// WorkflowCommandSvc executes request state transitions. Every method runs as one
// atomic unit and returns the request as committed.
type WorkflowCommandSvc interface {
	// Submit turns the caller's draft into a Submitted request and deletes the draft.
	Submit(ctx context.Context, caller domain.Caller, draftID string) (*domain.Request, error)

	// Approve moves a Submitted request of the caller's team to Approved.
	Approve(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.Request, error)

	// Reject moves a Submitted request of the caller's team to Rejected. comment is mandatory.
	Reject(ctx context.Context, caller domain.Caller, requestID string, comment string) (*domain.Request, error)

	// Resubmit moves the caller's Rejected request back to Submitted.
	Resubmit(ctx context.Context, caller domain.Caller, requestID string) (*domain.Request, error)

	// Pay moves an Approved request to Paid.
	Pay(ctx context.Context, caller domain.Caller, requestID string, notes *string) (*domain.Request, error)
}

// WorkflowQuerySvc defines visibility-scoped reads over requests.
type WorkflowQuerySvc interface {
	GetRequest(ctx context.Context, caller domain.Caller, requestID string) (*domain.Request, error)
	ListRequests(ctx context.Context, caller domain.Caller, params dto.ListRequestsParams) (*dto.ListRequestsResponse, error)
	ListTeamPending(ctx context.Context, caller domain.Caller, params dto.ListTeamPendingParams) (*dto.ListRequestsResponse, error)
	GetHistory(ctx context.Context, caller domain.Caller, requestID string) ([]domain.StatusHistoryEntry, error)
}

// WorkflowSvcFacade combines all workflow-related service interfaces
type WorkflowSvcFacade interface {
	WorkflowCommandSvc
	WorkflowQuerySvc
}
