package models

// Employee is the row stored in the employees table.
type Employee struct {
	EmployeeID   string  `db:"employee_id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	Department   string  `db:"department"`
	ManagerID    *string `db:"manager_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}

// Category is the row stored in the categories table.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
