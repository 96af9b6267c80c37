package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, caller domain.Caller, params dto.ListEmployeesParams) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, caller domain.Caller, employeeID string) (*domain.Employee, error)
}

// EmployeeAdminSvc defines administrative operations
type EmployeeAdminSvc interface {
	CreateEmployee(ctx context.Context, caller domain.Caller, req dto.CreateEmployeeRequest) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, caller domain.Caller, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error)
	SetEmployeeStatus(ctx context.Context, caller domain.Caller, employeeID string, isActive bool) (*domain.Employee, error)
}

// TeamDirectory resolves the manager hierarchy for approval authority.
type TeamDirectory interface {
	// TeamMemberIDs returns the employees reporting to managerID, deactivated
	// ones included. The result is only valid for the operation that asked for it.
	TeamMemberIDs(ctx context.Context, managerID string) ([]string, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeAdminSvc
	TeamDirectory
}
