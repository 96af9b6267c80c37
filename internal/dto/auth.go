package dto

import "time"

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token      string    `json:"token"`
	EmployeeID string    `json:"employeeID"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ExchangeCodeRequest defines the expected JSON body for the google exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleLoginURLResponse carries the consent URL and the CSRF state the client must echo back.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
