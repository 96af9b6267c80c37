package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation = "23505"

	activeFingerprintIndex = "requests_active_fingerprint_uq"
)

// requestSelect loads a request with its display names and child records in one round trip.
const requestSelect = `
	SELECT r.request_id, r.employee_id, e.name, r.category_id, c.name,
	       r.subject, r.description, r.amount, r.date_of_expense,
	       r.status, r.version, r.fingerprint, r.created_at, r.last_updated_at, r.last_updated_by,
	       a.manager_id, a.manager_name, a.comments, a.total_amount, a.payment_status, a.approved_at,
	       rj.manager_id, rj.manager_name, rj.comment, rj.rejected_at,
	       p.processed_by, p.notes, p.payment_date
	FROM requests r
	LEFT JOIN employees e ON e.employee_id = r.employee_id
	LEFT JOIN categories c ON c.category_id = r.category_id
	LEFT JOIN approvals a ON a.request_id = r.request_id
	LEFT JOIN rejections rj ON rj.request_id = r.request_id
	LEFT JOIN payments p ON p.request_id = r.request_id
`

type PgxWorkflowRepository struct {
	BaseRepository
}

func newPgxWorkflowRepository(pool *pgxpool.Pool) portsrepo.WorkflowRepositoryFacade {
	return &PgxWorkflowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkflowRepositoryFacade = (*PgxWorkflowRepository)(nil)

// WithinTx runs fn inside one database transaction.
func (r *PgxWorkflowRepository) WithinTx(ctx context.Context, fn portsrepo.WorkflowTxFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	if err := fn(ctx, &pgxWorkflowTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var (
		m models.Request

		aManagerID, aManagerName, aStatus *string
		aComments                         *string
		aTotal                            decimal.NullDecimal
		aApprovedAt                       *time.Time

		rjManagerID, rjManagerName, rjComment *string
		rjRejectedAt                          *time.Time

		pProcessedBy *string
		pNotes       *string
		pPaymentDate *time.Time
	)
	err := row.Scan(
		&m.RequestID, &m.EmployeeID, &m.EmployeeName, &m.CategoryID, &m.CategoryName,
		&m.Subject, &m.Description, &m.Amount, &m.DateOfExpense,
		&m.Status, &m.Version, &m.Fingerprint, &m.CreatedAt, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&aManagerID, &aManagerName, &aComments, &aTotal, &aStatus, &aApprovedAt,
		&rjManagerID, &rjManagerName, &rjComment, &rjRejectedAt,
		&pProcessedBy, &pNotes, &pPaymentDate,
	)
	if err != nil {
		return nil, err
	}

	req := mapping.ToDomainRequest(m)
	if aManagerID != nil {
		a := mapping.ToDomainApproval(models.Approval{
			RequestID:     m.RequestID,
			ManagerID:     *aManagerID,
			ManagerName:   deref(aManagerName),
			Comments:      aComments,
			TotalAmount:   aTotal.Decimal,
			PaymentStatus: deref(aStatus),
			ApprovedAt:    derefTime(aApprovedAt),
		})
		req.Approval = &a
	}
	if rjManagerID != nil {
		rj := mapping.ToDomainRejection(models.Rejection{
			RequestID:   m.RequestID,
			ManagerID:   *rjManagerID,
			ManagerName: deref(rjManagerName),
			Comment:     deref(rjComment),
			RejectedAt:  derefTime(rjRejectedAt),
		})
		req.Rejection = &rj
	}
	if pProcessedBy != nil {
		p := mapping.ToDomainPayment(models.Payment{
			RequestID:   m.RequestID,
			ProcessedBy: *pProcessedBy,
			Notes:       pNotes,
			PaymentDate: derefTime(pPaymentDate),
		})
		req.Payment = &p
	}
	return &req, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func findRequest(ctx context.Context, q querier, requestID string, forUpdate bool) (*domain.Request, error) {
	query := requestSelect + " WHERE r.request_id = $1"
	if forUpdate {
		query += " FOR UPDATE OF r"
	}
	req, err := scanRequest(q.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("request " + requestID)
		}
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	return req, nil
}

// FindRequestByID returns the committed request with its child records.
func (r *PgxWorkflowRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	return findRequest(ctx, r.Pool, requestID, false)
}

// ListRequests pages through requests newest first using a (created_at, request_id) keyset.
func (r *PgxWorkflowRepository) ListRequests(ctx context.Context, filter portsrepo.RequestFilter) ([]domain.Request, error) {
	if !filter.AllVisible && len(filter.OwnerIDs) == 0 {
		return []domain.Request{}, nil
	}

	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !filter.AllVisible {
		clauses = append(clauses, "r.employee_id = ANY("+arg(filter.OwnerIDs)+")")
	}
	if filter.EmployeeID != nil {
		clauses = append(clauses, "r.employee_id = "+arg(*filter.EmployeeID))
	}
	if filter.Status != nil {
		clauses = append(clauses, "r.status = "+arg(string(*filter.Status)))
	}
	if filter.From != nil {
		clauses = append(clauses, "r.date_of_expense >= "+arg(*filter.From))
	}
	if filter.To != nil {
		clauses = append(clauses, "r.date_of_expense <= "+arg(*filter.To))
	}
	if c := filter.Cursor; c != nil {
		clauses = append(clauses, "(r.created_at, r.request_id) < ("+arg(c.CreatedAt)+", "+arg(c.RequestID)+")")
	}

	query := requestSelect
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY r.created_at DESC, r.request_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		out = append(out, *req)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", rows.Err())
	}
	return out, nil
}

// ListHistory returns a request's audit trail in append order.
func (r *PgxWorkflowRepository) ListHistory(ctx context.Context, requestID string) ([]domain.StatusHistoryEntry, error) {
	query := `
		SELECT entry_id, request_id, seq, from_status, to_status, actor_id, actor_name, remarks, changed_at
		FROM request_status_history
		WHERE request_id = $1
		ORDER BY seq ASC;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for request %s: %w", requestID, err)
	}
	defer rows.Close()

	out := make([]domain.StatusHistoryEntry, 0)
	for rows.Next() {
		var m models.StatusHistory
		if err := rows.Scan(&m.EntryID, &m.RequestID, &m.Seq, &m.FromStatus, &m.ToStatus, &m.ActorID, &m.ActorName, &m.Remarks, &m.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, mapping.ToDomainStatusHistory(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", rows.Err())
	}
	return out, nil
}

// pgxWorkflowTx executes workflow writes on an open transaction.
type pgxWorkflowTx struct {
	tx querier
}

var _ portsrepo.WorkflowTx = (*pgxWorkflowTx)(nil)

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return constraint == "" || pgErr.ConstraintName == constraint
	}
	return false
}

func (t *pgxWorkflowTx) FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	return findDraft(ctx, t.tx, draftID, true)
}

func (t *pgxWorkflowTx) DeleteDraft(ctx context.Context, draftID string) error {
	return deleteDraft(ctx, t.tx, draftID)
}

func (t *pgxWorkflowTx) ExistsActiveFingerprint(ctx context.Context, fingerprint string, excludeRequestID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE fingerprint = $1 AND status <> 'REJECTED' AND request_id <> $2
		);
	`
	var exists bool
	if err := t.tx.QueryRow(ctx, query, fingerprint, excludeRequestID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return exists, nil
}

func (t *pgxWorkflowTx) InsertRequest(ctx context.Context, req domain.Request) (domain.Version, error) {
	m := mapping.ToModelRequest(req)
	query := `
		INSERT INTO requests (
			request_id, employee_id, category_id, subject, description, amount, date_of_expense,
			status, version, fingerprint, created_at, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10, $11, $12)
		RETURNING version;
	`
	var version int64
	err := t.tx.QueryRow(ctx, query,
		m.RequestID, m.EmployeeID, m.CategoryID, m.Subject, m.Description, m.Amount, m.DateOfExpense,
		m.Status, m.Fingerprint, m.CreatedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&version)
	if err != nil {
		if isUniqueViolation(err, activeFingerprintIndex) {
			return 0, apperrors.ErrDuplicateSubmission
		}
		if isUniqueViolation(err, "") {
			return 0, fmt.Errorf("request %s: %w", m.RequestID, apperrors.ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert request: %w", err)
	}
	return domain.Version(version), nil
}

func (t *pgxWorkflowTx) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	return findRequest(ctx, t.tx, requestID, true)
}

// CompareAndSwapStatus updates status only if the stored version still equals expected.
func (t *pgxWorkflowTx) CompareAndSwapStatus(ctx context.Context, requestID string, expected domain.Version, next domain.RequestStatus, actorID string, at time.Time) (domain.Version, error) {
	query := `
		UPDATE requests
		SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE request_id = $4 AND version = $5
		RETURNING version;
	`
	var version int64
	err := t.tx.QueryRow(ctx, query, string(next), at, actorID, requestID, int64(expected)).Scan(&version)
	if err == nil {
		return domain.Version(version), nil
	}
	if isUniqueViolation(err, activeFingerprintIndex) {
		return 0, apperrors.ErrDuplicateSubmission
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to update request status: %w", err)
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM requests WHERE request_id = $1)`, requestID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to check request existence: %w", err)
	}
	if !exists {
		return 0, apperrors.NewNotFoundError("request " + requestID)
	}
	return 0, apperrors.ErrConcurrentModification
}

func (t *pgxWorkflowTx) InsertApproval(ctx context.Context, rec domain.ApprovalRecord) error {
	m := mapping.ToModelApproval(rec)
	query := `
		INSERT INTO approvals (request_id, manager_id, manager_name, comments, total_amount, payment_status, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := t.tx.Exec(ctx, query, m.RequestID, m.ManagerID, m.ManagerName, m.Comments, m.TotalAmount, m.PaymentStatus, m.ApprovedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("approval for request %s: %w", m.RequestID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert approval: %w", err)
	}
	return nil
}

func (t *pgxWorkflowTx) MarkApprovalPaid(ctx context.Context, requestID string) error {
	cmdTag, err := t.tx.Exec(ctx, `UPDATE approvals SET payment_status = $1 WHERE request_id = $2`, string(domain.PaymentPaid), requestID)
	if err != nil {
		return fmt.Errorf("failed to mark approval paid: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("approval for request " + requestID)
	}
	return nil
}

// UpsertRejection keeps only the latest rejection of a request.
func (t *pgxWorkflowTx) UpsertRejection(ctx context.Context, rec domain.RejectionRecord) error {
	query := `
		INSERT INTO rejections (request_id, manager_id, manager_name, comment, rejected_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (request_id) DO UPDATE SET
			manager_id = EXCLUDED.manager_id,
			manager_name = EXCLUDED.manager_name,
			comment = EXCLUDED.comment,
			rejected_at = EXCLUDED.rejected_at;
	`
	if _, err := t.tx.Exec(ctx, query, rec.RequestID, rec.ManagerID, rec.ManagerName, rec.Comment, rec.RejectedAt); err != nil {
		return fmt.Errorf("failed to upsert rejection: %w", err)
	}
	return nil
}

func (t *pgxWorkflowTx) InsertPayment(ctx context.Context, rec domain.PaymentRecord) error {
	query := `
		INSERT INTO payments (request_id, processed_by, notes, payment_date)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := t.tx.Exec(ctx, query, rec.RequestID, rec.ProcessedBy, rec.Notes, rec.PaymentDate); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("payment for request %s: %w", rec.RequestID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// AppendHistory assigns the next sequence number of the request. Callers hold the
// request row lock through the preceding insert or compare-and-swap.
func (t *pgxWorkflowTx) AppendHistory(ctx context.Context, entry domain.StatusHistoryEntry) error {
	m := mapping.ToModelStatusHistory(entry)
	query := `
		INSERT INTO request_status_history (entry_id, request_id, seq, from_status, to_status, actor_id, actor_name, remarks, changed_at)
		SELECT $1::text, $2::text, COALESCE(MAX(seq), 0) + 1, $3::text, $4::text, $5::text, $6::text, $7::text, $8::timestamptz
		FROM request_status_history
		WHERE request_id = $2::text;
	`
	_, err := t.tx.Exec(ctx, query, m.EntryID, m.RequestID, m.FromStatus, m.ToStatus, m.ActorID, m.ActorName, m.Remarks, m.ChangedAt)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}
