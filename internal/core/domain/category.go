package domain

// Category classifies an expense.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
