package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetCategoryTotals sums every non-rejected request created in [from, to) per category.
func (r *reportingRepository) GetCategoryTotals(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT
			r.category_id,
			COALESCE(c.name, '') AS category_name,
			COUNT(*) AS request_count,
			SUM(r.amount) AS total_amount
		FROM requests r
		LEFT JOIN categories c ON c.category_id = r.category_id
		WHERE r.status <> 'REJECTED'
			AND r.created_at >= $1
			AND r.created_at < $2
		GROUP BY r.category_id, c.name
		ORDER BY total_amount DESC, r.category_id
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.RequestCount, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) CountPendingApprovals(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM requests WHERE status = 'SUBMITTED' AND created_at >= $1 AND created_at < $2`
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting pending approvals: %w", err)
	}
	return count, nil
}

func (r *reportingRepository) CountAllPendingApprovals(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE status = 'SUBMITTED'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting pending approvals: %w", err)
	}
	return count, nil
}

// GetTopClaims includes rejected requests; the dashboard shows the month's largest claims as filed.
func (r *reportingRepository) GetTopClaims(ctx context.Context, from, to time.Time, limit int) ([]domain.Request, error) {
	query := requestSelect + `
		WHERE r.created_at >= $1 AND r.created_at < $2
		ORDER BY r.amount DESC, r.created_at DESC, r.request_id
		LIMIT $3`
	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top claims: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Request, 0, limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning top claim row: %w", err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top claim rows: %w", err)
	}
	return out, nil
}
