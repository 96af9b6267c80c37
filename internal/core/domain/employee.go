package domain

// Role of an employee. Roles are carried in the access token.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleFinance  Role = "Finance"
	RoleAdmin    Role = "Admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleFinance, RoleAdmin:
		return true
	}
	return false
}

// IsAdminManageable reports whether administrators may create or modify accounts of this role.
// Admin and Finance accounts are provisioned out of band.
func (r Role) IsAdminManageable() bool {
	return r == RoleEmployee || r == RoleManager
}

// Employee represents a person who can log in and file or process claims.
type Employee struct {
	EmployeeID   string  `json:"employeeID"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Role         Role    `json:"role"`
	Department   string  `json:"department"`
	ManagerID    *string `json:"managerID,omitempty"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}

// Caller is the authorization context of an inbound command.
type Caller struct {
	EmployeeID string
	Name       string
	Role       Role
}

// HasRole reports whether the caller holds any of roles.
func (c Caller) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
