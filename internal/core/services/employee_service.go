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
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

// employeeService manages employee accounts and answers team membership questions.
type employeeService struct {
	BaseService
	repo     portsrepo.EmployeeRepositoryFacade
	sessions portssvc.SessionStore
}

// EmployeeServiceOption is a functional option for configuring the employee service
type EmployeeServiceOption func(*employeeService)

// WithSessionRevocation ends the live session of an employee when they are deactivated.
func WithSessionRevocation(sessions portssvc.SessionStore) EmployeeServiceOption {
	return func(s *employeeService) {
		s.sessions = sessions
	}
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(repo portsrepo.EmployeeRepositoryFacade, options ...EmployeeServiceOption) portssvc.EmployeeSvcFacade {
	svc := &employeeService{repo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get employee", slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return s.repo.FindEmployeeByEmail(ctx, utils.NormalizeEmail(email))
}

// ListEmployees returns a page of employees ordered by name. Admin only.
func (s *employeeService) ListEmployees(ctx context.Context, caller domain.Caller, params dto.ListEmployeesParams) ([]domain.Employee, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	employees, err := s.repo.FindEmployees(ctx, pagination.ClampLimit(params.Limit), offset, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees")
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns any employee record. Admin only.
func (s *employeeService) GetEmployee(ctx context.Context, caller domain.Caller, employeeID string) (*domain.Employee, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.GetEmployeeByID(ctx, employeeID)
}

// CreateEmployee provisions an Employee or Manager account. Admin only.
func (s *employeeService) CreateEmployee(ctx context.Context, caller domain.Caller, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if err := dto.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.Role.IsAdminManageable() {
		return nil, fmt.Errorf("%w: role %s cannot be assigned here", apperrors.ErrValidation, req.Role)
	}

	managerID, err := s.resolveManager(ctx, req.ManagerID, "")
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:   uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Department:   strings.TrimSpace(req.Department),
		ManagerID:    managerID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.EmployeeID,
		},
	}
	if err := s.repo.SaveEmployee(ctx, employee); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("an employee with this email already exists", err)
		}
		s.LogError(ctx, err, "Failed to save employee", slog.String("email", employee.Email))
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID), slog.String("role", string(employee.Role)))
	return &employee, nil
}

// UpdateEmployee edits name, role, department and manager of an Employee or
// Manager, and rehashes the password when a new one is given. Admin only.
func (s *employeeService) UpdateEmployee(ctx context.Context, caller domain.Caller, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Department = strings.TrimSpace(req.Department)
	if err := dto.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.Role.IsAdminManageable() {
		return nil, fmt.Errorf("%w: role %s cannot be assigned here", apperrors.ErrValidation, req.Role)
	}

	employee, err := s.repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Role.IsAdminManageable() {
		return nil, apperrors.NewForbiddenError("this account cannot be modified")
	}

	managerID, err := s.resolveManager(ctx, req.ManagerID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		employee.PasswordHash = hash
	}

	employee.Name = req.Name
	employee.Role = req.Role
	employee.Department = req.Department
	employee.ManagerID = managerID
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = caller.EmployeeID

	if err := s.repo.UpdateEmployee(ctx, *employee); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update employee", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	s.LogInfo(ctx, "Employee updated", slog.String("employee_id", employeeID), slog.String("role", string(employee.Role)))
	return employee, nil
}

// resolveManager checks that a requested manager exists, is an active Manager
// and is not the employee being edited. A blank ID clears the manager.
func (s *employeeService) resolveManager(ctx context.Context, requested *string, employeeID string) (*string, error) {
	if requested == nil || strings.TrimSpace(*requested) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*requested)
	if id == employeeID {
		return nil, fmt.Errorf("%w: an employee cannot manage themselves", apperrors.ErrValidation)
	}
	manager, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: manager %s does not exist", apperrors.ErrValidation, id)
		}
		return nil, err
	}
	if manager.Role != domain.RoleManager || !manager.IsActive {
		return nil, fmt.Errorf("%w: %s is not an active manager", apperrors.ErrValidation, id)
	}
	return &id, nil
}

// SetEmployeeStatus activates or deactivates an Employee or Manager. Admin only.
func (s *employeeService) SetEmployeeStatus(ctx context.Context, caller domain.Caller, employeeID string, isActive bool) (*domain.Employee, error) {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	employee, err := s.repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Role.IsAdminManageable() {
		return nil, apperrors.NewForbiddenError("this account cannot be modified")
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateEmployeeStatus(ctx, employeeID, isActive, now, caller.EmployeeID); err != nil {
		s.LogError(ctx, err, "Failed to update employee status", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee status: %w", err)
	}
	employee.IsActive = isActive
	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = caller.EmployeeID

	if !isActive && s.sessions != nil {
		if err := s.sessions.RemoveSession(ctx, employeeID, nil); err != nil {
			s.LogError(ctx, err, "Failed to revoke session of deactivated employee", slog.String("employee_id", employeeID))
		}
	}

	s.LogInfo(ctx, "Employee status changed", slog.String("employee_id", employeeID), slog.Bool("is_active", isActive))
	return employee, nil
}

// TeamMemberIDs returns every employee reporting to managerID, including
// deactivated ones whose submitted claims still await a decision.
func (s *employeeService) TeamMemberIDs(ctx context.Context, managerID string) ([]string, error) {
	return s.repo.FindTeamMemberIDs(ctx, managerID)
}
