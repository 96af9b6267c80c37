package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
)

type statusChange struct {
	expected   domain.Version
	newVersion domain.Version
	next       domain.RequestStatus
	actorID    string
	at         time.Time
}

// workflowTx reads committed state overlaid with its own pending writes.
// Nothing it does is visible to other callers until WorkflowStore.commit.
type workflowTx struct {
	store *WorkflowStore

	newRequests   map[string]domain.Request
	statusChanges map[string]statusChange
	deletedDrafts map[string]bool
	approvals     []domain.ApprovalRecord
	paidApprovals []string
	rejections    []domain.RejectionRecord
	payments      []domain.PaymentRecord
	history       []domain.StatusHistoryEntry
}

var _ portsrepo.WorkflowTx = (*workflowTx)(nil)

func newWorkflowTx(s *WorkflowStore) *workflowTx {
	return &workflowTx{
		store:         s,
		newRequests:   make(map[string]domain.Request),
		statusChanges: make(map[string]statusChange),
		deletedDrafts: make(map[string]bool),
	}
}

func (tx *workflowTx) hasApproval(requestID string) bool {
	for _, a := range tx.approvals {
		if a.RequestID == requestID {
			return true
		}
	}
	return false
}

func (tx *workflowTx) FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	if tx.deletedDrafts[draftID] {
		return nil, apperrors.NewNotFoundError("draft " + draftID)
	}
	return tx.store.FindDraftByID(ctx, draftID)
}

func (tx *workflowTx) DeleteDraft(ctx context.Context, draftID string) error {
	if _, err := tx.FindDraftByID(ctx, draftID); err != nil {
		return err
	}
	tx.deletedDrafts[draftID] = true
	return nil
}

func (tx *workflowTx) ExistsActiveFingerprint(_ context.Context, fingerprint string, excludeRequestID string) (bool, error) {
	for id, r := range tx.newRequests {
		if id != excludeRequestID && r.Fingerprint == fingerprint && r.Status != domain.StatusRejected {
			return true, nil
		}
	}

	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	for id, r := range tx.store.requests {
		if id == excludeRequestID || r.Fingerprint != fingerprint {
			continue
		}
		status := r.Status
		if change, ok := tx.statusChanges[id]; ok {
			status = change.next
		}
		if status != domain.StatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (tx *workflowTx) InsertRequest(_ context.Context, req domain.Request) (domain.Version, error) {
	if _, exists := tx.newRequests[req.RequestID]; exists {
		return 0, fmt.Errorf("request %s: %w", req.RequestID, apperrors.ErrDuplicate)
	}
	req.Version = 1
	req.Approval, req.Rejection, req.Payment = nil, nil, nil
	tx.newRequests[req.RequestID] = req
	return req.Version, nil
}

func (tx *workflowTx) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	if r, ok := tx.newRequests[requestID]; ok {
		return &r, nil
	}
	r, err := tx.store.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if change, ok := tx.statusChanges[requestID]; ok {
		r.Status = change.next
		r.Version = change.newVersion
		r.LastUpdatedAt = change.at
		r.LastUpdatedBy = change.actorID
	}
	return r, nil
}

func (tx *workflowTx) CompareAndSwapStatus(ctx context.Context, requestID string, expected domain.Version, next domain.RequestStatus, actorID string, at time.Time) (domain.Version, error) {
	if r, ok := tx.newRequests[requestID]; ok {
		if r.Version != expected {
			return 0, apperrors.ErrConcurrentModification
		}
		r.Status = next
		r.Version++
		r.LastUpdatedAt = at
		r.LastUpdatedBy = actorID
		tx.newRequests[requestID] = r
		return r.Version, nil
	}

	current, err := tx.FindRequestByID(ctx, requestID)
	if err != nil {
		return 0, err
	}
	if current.Version != expected {
		return 0, apperrors.ErrConcurrentModification
	}

	base := expected
	if prior, ok := tx.statusChanges[requestID]; ok {
		base = prior.expected
	}
	change := statusChange{
		expected:   base,
		newVersion: expected + 1,
		next:       next,
		actorID:    actorID,
		at:         at,
	}
	tx.statusChanges[requestID] = change
	return change.newVersion, nil
}

func (tx *workflowTx) InsertApproval(_ context.Context, rec domain.ApprovalRecord) error {
	if tx.hasApproval(rec.RequestID) {
		return fmt.Errorf("approval for request %s: %w", rec.RequestID, apperrors.ErrDuplicate)
	}
	tx.approvals = append(tx.approvals, rec)
	return nil
}

func (tx *workflowTx) MarkApprovalPaid(_ context.Context, requestID string) error {
	tx.paidApprovals = append(tx.paidApprovals, requestID)
	return nil
}

func (tx *workflowTx) UpsertRejection(_ context.Context, rec domain.RejectionRecord) error {
	tx.rejections = append(tx.rejections, rec)
	return nil
}

func (tx *workflowTx) InsertPayment(_ context.Context, rec domain.PaymentRecord) error {
	tx.payments = append(tx.payments, rec)
	return nil
}

func (tx *workflowTx) AppendHistory(_ context.Context, entry domain.StatusHistoryEntry) error {
	tx.history = append(tx.history, entry)
	return nil
}
