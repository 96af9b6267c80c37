package memory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRequest(t *testing.T, s *WorkflowStore, id, owner, fingerprint string, createdAt time.Time) {
	t.Helper()
	err := s.WithinTx(context.Background(), func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		_, err := tx.InsertRequest(ctx, domain.Request{
			RequestID:   id,
			EmployeeID:  owner,
			Amount:      decimal.NewFromInt(10),
			Status:      domain.StatusSubmitted,
			Fingerprint: fingerprint,
			CreatedAt:   createdAt,
		})
		return err
	})
	require.NoError(t, err)
}

func TestWorkflowStore_CompareAndSwapLoserWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()
	seedRequest(t, s, "r1", "emp", "fp", time.Now())

	winner := newWorkflowTx(s)
	loser := newWorkflowTx(s)

	r, err := winner.FindRequestByID(ctx, "r1")
	require.NoError(t, err)
	_, err = winner.CompareAndSwapStatus(ctx, "r1", r.Version, domain.StatusApproved, "mgr", time.Now())
	require.NoError(t, err)
	require.NoError(t, winner.InsertApproval(ctx, domain.ApprovalRecord{RequestID: "r1", PaymentStatus: domain.PaymentPending}))
	require.NoError(t, winner.AppendHistory(ctx, domain.StatusHistoryEntry{RequestID: "r1", FromStatus: domain.StatusSubmitted, ToStatus: domain.StatusApproved}))

	r2, err := loser.FindRequestByID(ctx, "r1")
	require.NoError(t, err)
	_, err = loser.CompareAndSwapStatus(ctx, "r1", r2.Version, domain.StatusRejected, "mgr", time.Now())
	require.NoError(t, err, "conflict is only detectable at commit")
	require.NoError(t, loser.UpsertRejection(ctx, domain.RejectionRecord{RequestID: "r1", Comment: "no"}))
	require.NoError(t, loser.AppendHistory(ctx, domain.StatusHistoryEntry{RequestID: "r1", FromStatus: domain.StatusSubmitted, ToStatus: domain.StatusRejected}))

	require.NoError(t, s.commit(winner))
	err = s.commit(loser)
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

	stored, err := s.FindRequestByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.NotNil(t, stored.Approval)
	assert.Nil(t, stored.Rejection)

	history, err := s.ListHistory(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(1), history[0].Seq)
}

func TestWorkflowStore_StaleVersionFailsFast(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()
	seedRequest(t, s, "r1", "emp", "fp", time.Now())

	err := s.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		_, err := tx.CompareAndSwapStatus(ctx, "r1", domain.Version(99), domain.StatusApproved, "mgr", time.Now())
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
}

func TestWorkflowStore_ErrorInsideTxDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()
	require.NoError(t, s.SaveDraft(ctx, domain.Draft{DraftID: "d1", EmployeeID: "emp"}))

	err := s.WithinTx(ctx, func(ctx context.Context, tx portsrepo.WorkflowTx) error {
		if _, err := tx.InsertRequest(ctx, domain.Request{RequestID: "r1", EmployeeID: "emp", Fingerprint: "fp"}); err != nil {
			return err
		}
		if err := tx.DeleteDraft(ctx, "d1"); err != nil {
			return err
		}
		return apperrors.ErrInvalidTransition
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = s.FindRequestByID(ctx, "r1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.FindDraftByID(ctx, "d1")
	assert.NoError(t, err)
}

func TestWorkflowStore_FingerprintCheckedAtCommit(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()

	first := newWorkflowTx(s)
	second := newWorkflowTx(s)
	_, err := first.InsertRequest(ctx, domain.Request{RequestID: "r1", Fingerprint: "same", Status: domain.StatusSubmitted})
	require.NoError(t, err)
	_, err = second.InsertRequest(ctx, domain.Request{RequestID: "r2", Fingerprint: "same", Status: domain.StatusSubmitted})
	require.NoError(t, err)

	require.NoError(t, s.commit(first))
	assert.ErrorIs(t, s.commit(second), apperrors.ErrDuplicateSubmission)
}

func TestWorkflowStore_DraftCannotBeSubmittedTwice(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()
	require.NoError(t, s.SaveDraft(ctx, domain.Draft{DraftID: "d1", EmployeeID: "emp"}))

	a := newWorkflowTx(s)
	b := newWorkflowTx(s)
	require.NoError(t, a.DeleteDraft(ctx, "d1"))
	require.NoError(t, b.DeleteDraft(ctx, "d1"))

	require.NoError(t, s.commit(a))
	assert.ErrorIs(t, s.commit(b), apperrors.ErrNotFound)
}

func TestWorkflowStore_ListRequestsVisibilityAndCursor(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seedRequest(t, s, "a", "emp-1", "fa", base)
	seedRequest(t, s, "b", "emp-2", "fb", base.Add(time.Minute))
	seedRequest(t, s, "c", "emp-1", "fc", base.Add(2*time.Minute))
	seedRequest(t, s, "d", "emp-3", "fd", base.Add(3*time.Minute))

	own, err := s.ListRequests(ctx, portsrepo.RequestFilter{OwnerIDs: []string{"emp-1"}})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "c", own[0].RequestID)
	assert.Equal(t, "a", own[1].RequestID)

	page1, err := s.ListRequests(ctx, portsrepo.RequestFilter{AllVisible: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, []string{"d", "c"}, []string{page1[0].RequestID, page1[1].RequestID})

	last := page1[len(page1)-1]
	page2, err := s.ListRequests(ctx, portsrepo.RequestFilter{
		AllVisible: true,
		Limit:      2,
		Cursor:     &portsrepo.RequestCursor{CreatedAt: last.CreatedAt, RequestID: last.RequestID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, []string{page2[0].RequestID, page2[1].RequestID})

	none, err := s.ListRequests(ctx, portsrepo.RequestFilter{OwnerIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWorkflowStore_DraftCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewWorkflowStore()
	now := time.Now()

	require.NoError(t, s.SaveDraft(ctx, domain.Draft{DraftID: "d1", EmployeeID: "emp", Subject: "a", LastUpdatedAt: now}))
	require.NoError(t, s.SaveDraft(ctx, domain.Draft{DraftID: "d2", EmployeeID: "emp", Subject: "b", LastUpdatedAt: now.Add(time.Second)}))
	require.NoError(t, s.SaveDraft(ctx, domain.Draft{DraftID: "d3", EmployeeID: "other"}))
	assert.ErrorIs(t, s.SaveDraft(ctx, domain.Draft{DraftID: "d1"}), apperrors.ErrDuplicate)

	drafts, err := s.ListDraftsByEmployee(ctx, "emp", 10, 0)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "d2", drafts[0].DraftID)

	updated := drafts[1]
	updated.Subject = "changed"
	require.NoError(t, s.UpdateDraft(ctx, updated))
	got, err := s.FindDraftByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Subject)

	require.NoError(t, s.DeleteDraft(ctx, "d1"))
	assert.ErrorIs(t, s.DeleteDraft(ctx, "d1"), apperrors.ErrNotFound)
	assert.ErrorIs(t, s.UpdateDraft(ctx, domain.Draft{DraftID: "missing"}), apperrors.ErrNotFound)
}
