package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// CreateEmployeeRequest defines the payload for an admin creating an employee.
type CreateEmployeeRequest struct {
	Name      string      `json:"name" binding:"required,max=200"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	Role       domain.Role `json:"role" binding:"required,oneof=Employee Manager"`
	Department string      `json:"department" binding:"max=100"`
	ManagerID  *string     `json:"managerID"`
}

// UpdateEmployeeRequest replaces the editable profile of an employee. The
// password is only changed when a non-blank value is sent.
type UpdateEmployeeRequest struct {
	Name       string      `json:"name" binding:"required,max=200"`
	Role       domain.Role `json:"role" binding:"required,oneof=Employee Manager"`
	Department string      `json:"department" binding:"max=100"`
	ManagerID  *string     `json:"managerID"`
	Password   *string     `json:"password,omitempty"`
}

// UpdateEmployeeStatusRequest toggles an employee's active flag.
type UpdateEmployeeStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Limit           int  `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	Offset          int  `form:"offset,default=0" binding:"omitempty,min=0"`
	IncludeInactive bool `form:"includeInactive"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string    `json:"employeeID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	ManagerID  *string   `json:"managerID,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListEmployeesResponse wraps a page of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// ToEmployeeResponse converts a domain.Employee. The password hash never leaves the service.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       string(e.Role),
		Department: e.Department,
		ManagerID:  e.ManagerID,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}

// ToListEmployeesResponse converts a slice of employees.
func ToListEmployeesResponse(es []domain.Employee) ListEmployeesResponse {
	resp := ListEmployeesResponse{Employees: make([]EmployeeResponse, len(es))}
	for i := range es {
		resp.Employees[i] = ToEmployeeResponse(&es[i])
	}
	return resp
}
