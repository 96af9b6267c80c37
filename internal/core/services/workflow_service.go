package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	maxCommentLength = 1000

	remarkDraftSubmitted = "Draft submitted"
	remarkResubmitted    = "Employee resubmitted rejected request"
)

// workflowService owns the request state machine. Every transition runs inside one
// repository transaction gated by a compare-and-swap on the request version.
type workflowService struct {
	BaseService
	repo    portsrepo.WorkflowRepositoryFacade
	team    portssvc.TeamDirectory
	tracker portssvc.EventTracker
	now     func() time.Time
}

// WorkflowOption is a functional option for configuring the workflow service
type WorkflowOption func(*workflowService)

// WithEventTracker reports committed transitions to an analytics sink.
func WithEventTracker(tracker portssvc.EventTracker) WorkflowOption {
	return func(s *workflowService) {
		s.tracker = tracker
	}
}

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) WorkflowOption {
	return func(s *workflowService) {
		s.now = now
	}
}

// NewWorkflowService creates the workflow engine.
func NewWorkflowService(repo portsrepo.WorkflowRepositoryFacade, team portssvc.TeamDirectory, options ...WorkflowOption) portssvc.WorkflowSvcFacade {
	svc := &workflowService{
		repo: repo,
		team: team,
		now:  time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

func (s *workflowService) timestamp() time.Time {
	return s.now().UTC()
}

func (s *workflowService) track(caller domain.Caller, event string, req *domain.Request) {
	if s.tracker == nil || req == nil {
		return
	}
	s.tracker.Track(caller.EmployeeID, event, map[string]any{
		"request_id": req.RequestID,
		"status":     string(req.Status),
		"amount":     req.Amount.String(),
	})
}

// logFailure keeps expected business outcomes at info level and storage faults at error.
func (s *workflowService) logFailure(ctx context.Context, err error, op, requestID string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNotAuthorized),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrDuplicateSubmission),
		errors.Is(err, apperrors.ErrConcurrentModification),
		errors.Is(err, apperrors.ErrValidation):
		s.LogInfo(ctx, "Workflow command refused", slog.String("op", op), slog.String("request_id", requestID), slog.String("reason", err.Error()))
	default:
		s.LogError(ctx, err, "Workflow command failed", slog.String("op", op), slog.String("request_id", requestID))
	}
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func historyEntry(req *domain.Request, from, to domain.RequestStatus, caller domain.Caller, remarks *string, at time.Time) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		EntryID:    uuid.NewString(),
		RequestID:  req.RequestID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    caller.EmployeeID,
		ActorName:  caller.Name,
		Remarks:    remarks,
		ChangedAt:  at,
	}
}

// Submit converts the caller's draft into a Submitted request.
func (s *workflowService) Submit(ctx context.Context, caller domain.Caller, draftID string) (*domain.Request, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleEmployee, domain.RoleManager); err != nil {
		return nil, err
	}

	var created *domain.Request
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		draft, err := tx.FindDraftByID(ctx, draftID)
		if err != nil {
			return err
		}
		if draft.EmployeeID != caller.EmployeeID {
			return apperrors.NewNotFoundError("draft " + draftID)
		}

		fingerprint := domain.FingerprintOf(*draft)
		duplicate, err := tx.ExistsActiveFingerprint(ctx, fingerprint, "")
		if err != nil {
			return err
		}
		if duplicate {
			return apperrors.ErrDuplicateSubmission
		}

		now := s.timestamp()
		req := domain.Request{
			RequestID:     uuid.NewString(),
			EmployeeID:    draft.EmployeeID,
			CategoryID:    draft.CategoryID,
			Subject:       draft.Subject,
			Description:   draft.Description,
			Amount:        draft.Amount,
			DateOfExpense: draft.DateOfExpense,
			Status:        domain.StatusSubmitted,
			Fingerprint:   fingerprint,
			CreatedAt:     now,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.EmployeeID,
		}
		version, err := tx.InsertRequest(ctx, req)
		if err != nil {
			return err
		}
		req.Version = version

		remark := remarkDraftSubmitted
		if err := tx.AppendHistory(ctx, historyEntry(&req, domain.StatusDraft, domain.StatusSubmitted, caller, &remark, now)); err != nil {
			return err
		}
		if err := tx.DeleteDraft(ctx, draft.DraftID); err != nil {
			return err
		}
		created = &req
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "submit", draftID)
		return nil, fmt.Errorf("submit draft %s: %w", draftID, err)
	}

	s.LogInfo(ctx, "Request submitted", slog.String("request_id", created.RequestID), slog.String("draft_id", draftID))
	s.track(caller, "request_submitted", created)
	return created, nil
}

// Approve moves a Submitted request of the caller's team to Approved.
func (s *workflowService) Approve(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.Request, error) {
	comment = trimmedOrNil(comment)
	if comment != nil && len(*comment) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", apperrors.ErrValidation, maxCommentLength)
	}

	updated, err := s.decide(ctx, caller, requestID, domain.StatusApproved, comment)
	if err != nil {
		s.logFailure(ctx, err, "approve", requestID)
		return nil, fmt.Errorf("approve request %s: %w", requestID, err)
	}
	s.LogInfo(ctx, "Request approved", slog.String("request_id", requestID))
	s.track(caller, "request_approved", updated)
	return updated, nil
}

// Reject moves a Submitted request of the caller's team to Rejected.
func (s *workflowService) Reject(ctx context.Context, caller domain.Caller, requestID string, comment string) (*domain.Request, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: a rejection comment is required", apperrors.ErrValidation)
	}
	if len(comment) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", apperrors.ErrValidation, maxCommentLength)
	}

	updated, err := s.decide(ctx, caller, requestID, domain.StatusRejected, &comment)
	if err != nil {
		s.logFailure(ctx, err, "reject", requestID)
		return nil, fmt.Errorf("reject request %s: %w", requestID, err)
	}
	s.LogInfo(ctx, "Request rejected", slog.String("request_id", requestID))
	s.track(caller, "request_rejected", updated)
	return updated, nil
}

// decide is the shared manager path of Approve and Reject. The version read here is
// the one the commit is checked against.
func (s *workflowService) decide(ctx context.Context, caller domain.Caller, requestID string, next domain.RequestStatus, comment *string) (*domain.Request, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleManager); err != nil {
		return nil, err
	}

	current, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	onTeam, err := s.isOnTeam(ctx, caller.EmployeeID, current.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !onTeam {
		return nil, apperrors.ErrNotAuthorized
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, current.Status, next)
	}

	updated := *current
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		now := s.timestamp()
		version, err := tx.CompareAndSwapStatus(ctx, requestID, current.Version, next, caller.EmployeeID, now)
		if err != nil {
			return err
		}

		switch next {
		case domain.StatusApproved:
			rec := domain.ApprovalRecord{
				RequestID:     requestID,
				ManagerID:     caller.EmployeeID,
				ManagerName:   caller.Name,
				Comments:      comment,
				TotalAmount:   current.Amount,
				PaymentStatus: domain.PaymentPending,
				ApprovedAt:    now,
			}
			if err := tx.InsertApproval(ctx, rec); err != nil {
				return err
			}
			updated.Approval = &rec
		case domain.StatusRejected:
			rec := domain.RejectionRecord{
				RequestID:   requestID,
				ManagerID:   caller.EmployeeID,
				ManagerName: caller.Name,
				Comment:     *comment,
				RejectedAt:  now,
			}
			if err := tx.UpsertRejection(ctx, rec); err != nil {
				return err
			}
			updated.Rejection = &rec
		}

		if err := tx.AppendHistory(ctx, historyEntry(current, current.Status, next, caller, comment, now)); err != nil {
			return err
		}
		updated.Status = next
		updated.Version = version
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = caller.EmployeeID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *workflowService) isOnTeam(ctx context.Context, managerID, employeeID string) (bool, error) {
	members, err := s.team.TeamMemberIDs(ctx, managerID)
	if err != nil {
		return false, fmt.Errorf("resolve team of %s: %w", managerID, err)
	}
	for _, id := range members {
		if id == employeeID {
			return true, nil
		}
	}
	return false, nil
}

// Resubmit moves the caller's Rejected request back to Submitted. The rejection
// record stays in place.
func (s *workflowService) Resubmit(ctx context.Context, caller domain.Caller, requestID string) (*domain.Request, error) {
	current, err := s.repo.FindRequestByID(ctx, requestID)
	if err == nil && current.EmployeeID != caller.EmployeeID {
		err = apperrors.NewNotFoundError("request " + requestID)
	}
	if err == nil && !current.Status.CanTransitionTo(domain.StatusSubmitted) {
		err = fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, current.Status, domain.StatusSubmitted)
	}

	var updated domain.Request
	if err == nil {
		updated = *current
		err = s.repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
			duplicate, err := tx.ExistsActiveFingerprint(ctx, current.Fingerprint, requestID)
			if err != nil {
				return err
			}
			if duplicate {
				return apperrors.ErrDuplicateSubmission
			}

			now := s.timestamp()
			version, err := tx.CompareAndSwapStatus(ctx, requestID, current.Version, domain.StatusSubmitted, caller.EmployeeID, now)
			if err != nil {
				return err
			}
			remark := remarkResubmitted
			if err := tx.AppendHistory(ctx, historyEntry(current, domain.StatusRejected, domain.StatusSubmitted, caller, &remark, now)); err != nil {
				return err
			}
			updated.Status = domain.StatusSubmitted
			updated.Version = version
			updated.LastUpdatedAt = now
			updated.LastUpdatedBy = caller.EmployeeID
			return nil
		})
	}
	if err != nil {
		s.logFailure(ctx, err, "resubmit", requestID)
		return nil, fmt.Errorf("resubmit request %s: %w", requestID, err)
	}

	s.LogInfo(ctx, "Request resubmitted", slog.String("request_id", requestID))
	s.track(caller, "request_resubmitted", &updated)
	return &updated, nil
}

// Pay moves an Approved request to Paid, flips the approval's payment status and
// records the payment.
func (s *workflowService) Pay(ctx context.Context, caller domain.Caller, requestID string, notes *string) (*domain.Request, error) {
	notes = trimmedOrNil(notes)
	if notes != nil && len(*notes) > maxCommentLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", apperrors.ErrValidation, maxCommentLength)
	}
	if err := s.RequireRole(ctx, caller, domain.RoleFinance, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("pay request %s: %w", requestID, err)
	}

	current, err := s.repo.FindRequestByID(ctx, requestID)
	if err == nil && !current.Status.CanTransitionTo(domain.StatusPaid) {
		err = fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, current.Status, domain.StatusPaid)
	}

	var updated domain.Request
	if err == nil {
		updated = *current
		err = s.repo.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
			now := s.timestamp()
			version, err := tx.CompareAndSwapStatus(ctx, requestID, current.Version, domain.StatusPaid, caller.EmployeeID, now)
			if err != nil {
				return err
			}
			if err := tx.MarkApprovalPaid(ctx, requestID); err != nil {
				return err
			}
			payment := domain.PaymentRecord{
				RequestID:   requestID,
				ProcessedBy: caller.EmployeeID,
				Notes:       notes,
				PaymentDate: now,
			}
			if err := tx.InsertPayment(ctx, payment); err != nil {
				return err
			}
			if err := tx.AppendHistory(ctx, historyEntry(current, domain.StatusApproved, domain.StatusPaid, caller, notes, now)); err != nil {
				return err
			}

			updated.Status = domain.StatusPaid
			updated.Version = version
			updated.LastUpdatedAt = now
			updated.LastUpdatedBy = caller.EmployeeID
			updated.Payment = &payment
			if updated.Approval != nil {
				approval := *updated.Approval
				approval.PaymentStatus = domain.PaymentPaid
				updated.Approval = &approval
			}
			return nil
		})
	}
	if err != nil {
		s.logFailure(ctx, err, "pay", requestID)
		return nil, fmt.Errorf("pay request %s: %w", requestID, err)
	}

	s.LogInfo(ctx, "Request paid", slog.String("request_id", requestID))
	s.track(caller, "request_paid", &updated)
	return &updated, nil
}

// visibility returns whether caller sees every request, and otherwise whose requests it sees.
func (s *workflowService) visibility(ctx context.Context, caller domain.Caller) (bool, []string, error) {
	switch caller.Role {
	case domain.RoleFinance, domain.RoleAdmin:
		return true, nil, nil
	case domain.RoleManager:
		members, err := s.team.TeamMemberIDs(ctx, caller.EmployeeID)
		if err != nil {
			return false, nil, fmt.Errorf("resolve team of %s: %w", caller.EmployeeID, err)
		}
		return false, append([]string{caller.EmployeeID}, members...), nil
	default:
		return false, []string{caller.EmployeeID}, nil
	}
}

func (s *workflowService) canSee(ctx context.Context, caller domain.Caller, ownerID string) (bool, error) {
	all, owners, err := s.visibility(ctx, caller)
	if err != nil {
		return false, err
	}
	if all {
		return true, nil
	}
	for _, id := range owners {
		if id == ownerID {
			return true, nil
		}
	}
	return false, nil
}

// GetRequest returns a request the caller is allowed to see.
func (s *workflowService) GetRequest(ctx context.Context, caller domain.Caller, requestID string) (*domain.Request, error) {
	req, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	visible, err := s.canSee(ctx, caller, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewNotFoundError("request " + requestID)
	}
	return req, nil
}

// ListRequests returns a page of requests visible to the caller.
func (s *workflowService) ListRequests(ctx context.Context, caller domain.Caller, params dto.ListRequestsParams) (*dto.ListRequestsResponse, error) {
	all, owners, err := s.visibility(ctx, caller)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.RequestFilter{
		AllVisible: all,
		OwnerIDs:   owners,
		EmployeeID: params.EmployeeID,
		From:       params.From,
		To:         params.To,
	}
	if params.Status != nil {
		status := domain.RequestStatus(strings.ToUpper(*params.Status))
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}
	return s.pageRequests(ctx, filter, params.Limit, params.NextToken)
}

// pageRequests fetches one keyset page for filter and sets the token of the next page.
func (s *workflowService) pageRequests(ctx context.Context, filter portsrepo.RequestFilter, requestedLimit int, nextToken *string) (*dto.ListRequestsResponse, error) {
	limit := pagination.ClampLimit(requestedLimit)
	filter.Limit = limit + 1
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.Cursor = &portsrepo.RequestCursor{CreatedAt: createdAt, RequestID: id}
	}

	requests, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list requests")
		return nil, fmt.Errorf("list requests: %w", err)
	}

	resp := &dto.ListRequestsResponse{}
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		resp.NextToken = &token
	}
	resp.Requests = dto.ToRequestResponses(requests)
	return resp, nil
}

// ListTeamPending pages through the Submitted requests awaiting the calling manager.
func (s *workflowService) ListTeamPending(ctx context.Context, caller domain.Caller, params dto.ListTeamPendingParams) (*dto.ListRequestsResponse, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleManager); err != nil {
		return nil, err
	}
	members, err := s.team.TeamMemberIDs(ctx, caller.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("resolve team of %s: %w", caller.EmployeeID, err)
	}
	submitted := domain.StatusSubmitted
	return s.pageRequests(ctx, portsrepo.RequestFilter{
		OwnerIDs: members,
		Status:   &submitted,
	}, params.Limit, params.NextToken)
}

// GetHistory returns the audit trail of a visible request.
func (s *workflowService) GetHistory(ctx context.Context, caller domain.Caller, requestID string) ([]domain.StatusHistoryEntry, error) {
	if _, err := s.GetRequest(ctx, caller, requestID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, requestID)
}
