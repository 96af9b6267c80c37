package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by their ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByEmail retrieves an employee by login email (case-insensitive).
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// FindEmployees retrieves a page of employees ordered by name. Inactive
	// employees are skipped unless includeInactive is set.
	FindEmployees(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Employee, error)

	// FindTeamMemberIDs returns the IDs of all employees reporting to managerID,
	// including deactivated ones.
	FindTeamMemberIDs(ctx context.Context, managerID string) ([]string, error)
}

// EmployeeWriter defines write operations for employee data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee. A taken email yields apperrors.ErrDuplicate.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee stores name, role, department, manager and password hash.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployeeStatus activates or deactivates an employee.
	UpdateEmployeeStatus(ctx context.Context, employeeID string, isActive bool, updatedAt time.Time, updatedBy string) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
