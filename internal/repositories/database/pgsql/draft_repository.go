package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const draftColumns = `draft_id, employee_id, category_id, subject, description, amount, date_of_expense, created_at, last_updated_at`

type PgxDraftRepository struct {
	BaseRepository
}

func newPgxDraftRepository(db *pgxpool.Pool) portsrepo.DraftRepositoryFacade {
	return &PgxDraftRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxDraftRepository implements portsrepo.DraftRepositoryFacade
var _ portsrepo.DraftRepositoryFacade = (*PgxDraftRepository)(nil)

func scanDraft(row pgx.Row) (*domain.Draft, error) {
	var m models.Draft
	if err := row.Scan(&m.DraftID, &m.EmployeeID, &m.CategoryID, &m.Subject, &m.Description, &m.Amount, &m.DateOfExpense, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return nil, err
	}
	d := mapping.ToDomainDraft(m)
	return &d, nil
}

// findDraft is shared with the workflow transaction, which locks the row so a draft
// can only be consumed once.
func findDraft(ctx context.Context, q querier, draftID string, forUpdate bool) (*domain.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE draft_id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	d, err := scanDraft(q.QueryRow(ctx, query, draftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("draft " + draftID)
		}
		return nil, fmt.Errorf("failed to find draft %s: %w", draftID, err)
	}
	return d, nil
}

func deleteDraft(ctx context.Context, q querier, draftID string) error {
	cmdTag, err := q.Exec(ctx, `DELETE FROM drafts WHERE draft_id = $1`, draftID)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft " + draftID)
	}
	return nil
}

func (r *PgxDraftRepository) FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	return findDraft(ctx, r.Pool, draftID, false)
}

func (r *PgxDraftRepository) ListDraftsByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.Draft, error) {
	query := `SELECT ` + draftColumns + `
		FROM drafts
		WHERE employee_id = $1
		ORDER BY last_updated_at DESC, draft_id
		LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]domain.Draft, 0)
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		drafts = append(drafts, *d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating draft rows: %w", rows.Err())
	}
	return drafts, nil
}

func (r *PgxDraftRepository) SaveDraft(ctx context.Context, draft domain.Draft) error {
	m := mapping.ToModelDraft(draft)
	query := `INSERT INTO drafts (` + draftColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query, m.DraftID, m.EmployeeID, m.CategoryID, m.Subject, m.Description, m.Amount, m.DateOfExpense, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("draft %s: %w", m.DraftID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *PgxDraftRepository) UpdateDraft(ctx context.Context, draft domain.Draft) error {
	m := mapping.ToModelDraft(draft)
	query := `
		UPDATE drafts
		SET category_id = $1, subject = $2, description = $3, amount = $4, date_of_expense = $5, last_updated_at = $6
		WHERE draft_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Subject, m.Description, m.Amount, m.DateOfExpense, m.LastUpdatedAt, m.DraftID)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft " + m.DraftID)
	}
	return nil
}

func (r *PgxDraftRepository) DeleteDraft(ctx context.Context, draftID string) error {
	return deleteDraft(ctx, r.Pool, draftID)
}
