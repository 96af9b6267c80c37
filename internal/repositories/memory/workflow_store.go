package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
)

// WorkflowStore is an in-process implementation of the workflow and draft repositories.
// Transactions buffer their writes and validate them at commit under the store lock,
// mirroring the version compare-and-swap the SQL store performs.
type WorkflowStore struct {
	mu         sync.RWMutex
	requests   map[string]domain.Request
	drafts     map[string]domain.Draft
	history    map[string][]domain.StatusHistoryEntry
	approvals  map[string]domain.ApprovalRecord
	rejections map[string]domain.RejectionRecord
	payments   map[string]domain.PaymentRecord
}

var (
	_ portsrepo.WorkflowRepositoryFacade = (*WorkflowStore)(nil)
	_ portsrepo.DraftRepositoryFacade    = (*WorkflowStore)(nil)
)

// NewWorkflowStore creates an empty store.
func NewWorkflowStore() *WorkflowStore {
	return &WorkflowStore{
		requests:   make(map[string]domain.Request),
		drafts:     make(map[string]domain.Draft),
		history:    make(map[string][]domain.StatusHistoryEntry),
		approvals:  make(map[string]domain.ApprovalRecord),
		rejections: make(map[string]domain.RejectionRecord),
		payments:   make(map[string]domain.PaymentRecord),
	}
}

// WithinTx runs fn against a buffered transaction and commits it atomically.
func (s *WorkflowStore) WithinTx(ctx context.Context, fn portsrepo.WorkflowTxFunc) error {
	tx := newWorkflowTx(s)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *WorkflowStore) commit(tx *workflowTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything before applying anything.
	for id, change := range tx.statusChanges {
		current, ok := s.requests[id]
		if !ok {
			return apperrors.NewNotFoundError("request " + id)
		}
		if current.Version != change.expected {
			return apperrors.ErrConcurrentModification
		}
	}
	for id := range tx.deletedDrafts {
		if _, ok := s.drafts[id]; !ok {
			return apperrors.NewNotFoundError("draft " + id)
		}
	}
	for id, req := range tx.newRequests {
		if _, exists := s.requests[id]; exists {
			return fmt.Errorf("request %s: %w", id, apperrors.ErrDuplicate)
		}
		if s.activeFingerprintLocked(req.Fingerprint, id) {
			return apperrors.ErrDuplicateSubmission
		}
	}
	for id, change := range tx.statusChanges {
		if change.next == domain.StatusSubmitted && s.activeFingerprintLocked(s.requests[id].Fingerprint, id) {
			return apperrors.ErrDuplicateSubmission
		}
	}
	for _, rec := range tx.approvals {
		if _, exists := s.approvals[rec.RequestID]; exists {
			return fmt.Errorf("approval for request %s: %w", rec.RequestID, apperrors.ErrDuplicate)
		}
	}
	for _, rec := range tx.payments {
		if _, exists := s.payments[rec.RequestID]; exists {
			return fmt.Errorf("payment for request %s: %w", rec.RequestID, apperrors.ErrDuplicate)
		}
	}
	for _, id := range tx.paidApprovals {
		if _, inStore := s.approvals[id]; !inStore && !tx.hasApproval(id) {
			return apperrors.NewNotFoundError("approval for request " + id)
		}
	}

	for id, req := range tx.newRequests {
		s.requests[id] = req
	}
	for id, change := range tx.statusChanges {
		req := s.requests[id]
		req.Status = change.next
		req.Version = change.newVersion
		req.LastUpdatedAt = change.at
		req.LastUpdatedBy = change.actorID
		s.requests[id] = req
	}
	for id := range tx.deletedDrafts {
		delete(s.drafts, id)
	}
	for _, rec := range tx.approvals {
		s.approvals[rec.RequestID] = rec
	}
	for _, id := range tx.paidApprovals {
		rec := s.approvals[id]
		rec.PaymentStatus = domain.PaymentPaid
		s.approvals[id] = rec
	}
	for _, rec := range tx.rejections {
		s.rejections[rec.RequestID] = rec
	}
	for _, rec := range tx.payments {
		s.payments[rec.RequestID] = rec
	}
	for _, entry := range tx.history {
		entry.Seq = int64(len(s.history[entry.RequestID]) + 1)
		s.history[entry.RequestID] = append(s.history[entry.RequestID], entry)
	}
	return nil
}

func (s *WorkflowStore) activeFingerprintLocked(fingerprint, excludeID string) bool {
	for id, r := range s.requests {
		if id != excludeID && r.Fingerprint == fingerprint && r.Status != domain.StatusRejected {
			return true
		}
	}
	return false
}

func (s *WorkflowStore) withChildrenLocked(r domain.Request) domain.Request {
	if a, ok := s.approvals[r.RequestID]; ok {
		r.Approval = &a
	}
	if rj, ok := s.rejections[r.RequestID]; ok {
		r.Rejection = &rj
	}
	if p, ok := s.payments[r.RequestID]; ok {
		r.Payment = &p
	}
	return r
}

// FindRequestByID returns the committed request with its child records.
func (s *WorkflowStore) FindRequestByID(_ context.Context, requestID string) (*domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[requestID]
	if !ok {
		return nil, apperrors.NewNotFoundError("request " + requestID)
	}
	r = s.withChildrenLocked(r)
	return &r, nil
}

// ListRequests filters and orders requests newest first.
func (s *WorkflowStore) ListRequests(_ context.Context, filter portsrepo.RequestFilter) ([]domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make(map[string]bool, len(filter.OwnerIDs))
	for _, id := range filter.OwnerIDs {
		owners[id] = true
	}

	out := make([]domain.Request, 0)
	for _, r := range s.requests {
		if !filter.AllVisible && !owners[r.EmployeeID] {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.From != nil && r.DateOfExpense.Before(*filter.From) {
			continue
		}
		if filter.To != nil && r.DateOfExpense.After(*filter.To) {
			continue
		}
		if c := filter.Cursor; c != nil {
			if r.CreatedAt.After(c.CreatedAt) || (r.CreatedAt.Equal(c.CreatedAt) && r.RequestID >= c.RequestID) {
				continue
			}
		}
		out = append(out, s.withChildrenLocked(r))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RequestID > out[j].RequestID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ListHistory returns the audit trail in append order.
func (s *WorkflowStore) ListHistory(_ context.Context, requestID string) ([]domain.StatusHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[requestID]
	out := make([]domain.StatusHistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// FindDraftByID returns a stored draft.
func (s *WorkflowStore) FindDraftByID(_ context.Context, draftID string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, apperrors.NewNotFoundError("draft " + draftID)
	}
	return &d, nil
}

// ListDraftsByEmployee returns an employee's drafts, most recently edited first.
func (s *WorkflowStore) ListDraftsByEmployee(_ context.Context, employeeID string, limit, offset int) ([]domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Draft, 0)
	for _, d := range s.drafts {
		if d.EmployeeID == employeeID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdatedAt.After(out[j].LastUpdatedAt) })
	if offset >= len(out) {
		return []domain.Draft{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveDraft stores a new draft.
func (s *WorkflowStore) SaveDraft(_ context.Context, draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.drafts[draft.DraftID]; exists {
		return fmt.Errorf("draft %s: %w", draft.DraftID, apperrors.ErrDuplicate)
	}
	s.drafts[draft.DraftID] = draft
	return nil
}

// UpdateDraft replaces an existing draft.
func (s *WorkflowStore) UpdateDraft(_ context.Context, draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.drafts[draft.DraftID]; !exists {
		return apperrors.NewNotFoundError("draft " + draft.DraftID)
	}
	s.drafts[draft.DraftID] = draft
	return nil
}

// DeleteDraft removes a draft.
func (s *WorkflowStore) DeleteDraft(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.drafts[draftID]; !exists {
		return apperrors.NewNotFoundError("draft " + draftID)
	}
	delete(s.drafts, draftID)
	return nil
}
