package domain

import "time"

// Session is the single live credential identifier of an employee.
type Session struct {
	EmployeeID string
	SessionID  string // jti of the issued access token
	ExpiresAt  time.Time
}

// IsExpired reports whether the session is no longer live at now.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IssuedToken is an access token together with the session it is bound to.
type IssuedToken struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
	Employee  Employee
}
