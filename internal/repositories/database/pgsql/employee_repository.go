package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `employee_id, name, email, password_hash, role, department, manager_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

// teamMemberIDsQuery lists every direct report of a manager, active or not, so that
// claims filed before a deactivation can still be decided.
const teamMemberIDsQuery = `SELECT employee_id FROM employees WHERE manager_id = $1`

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(db *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployeeModel(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.Department,
		&m.ManagerID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	m, err := scanEmployeeModel(row)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainEmployee(m)
	return &e, nil
}

func (r *PgxEmployeeRepository) findOne(ctx context.Context, where string, arg any) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where
	e, err := scanEmployee(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("employee")
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return e, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return r.findOne(ctx, "employee_id = $1", employeeID)
}

func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "lower(email) = lower($1)", email)
}

func (r *PgxEmployeeRepository) FindEmployees(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active OR $3
		ORDER BY name, employee_id
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employeeModels []models.Employee
	for rows.Next() {
		m, err := scanEmployeeModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employeeModels = append(employeeModels, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return mapping.ToDomainEmployeeSlice(employeeModels), nil
}

func (r *PgxEmployeeRepository) FindTeamMemberIDs(ctx context.Context, managerID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, teamMemberIDsQuery, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team of %s: %w", managerID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect team of %s: %w", managerID, err)
	}
	return ids, nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `INSERT INTO employees (` + employeeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.Department,
		m.ManagerID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("employee %s: %w", m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateEmployeeStatus(ctx context.Context, employeeID string, isActive bool, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE employees
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE employee_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, isActive, updatedAt, updatedBy, employeeID)
	if err != nil {
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("employee " + employeeID)
	}
	return nil
}

// UpdateEmployee rewrites the profile fields an administrator may change.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $1, role = $2, department = $3, manager_id = $4, password_hash = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE employee_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Role, m.Department, m.ManagerID, m.PasswordHash,
		m.LastUpdatedAt, m.LastUpdatedBy, m.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("employee " + m.EmployeeID)
	}
	return nil
}
