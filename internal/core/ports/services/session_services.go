package services

import (
	"context"
	"time"
)

// SessionStore tracks the single live credential identifier per employee.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// TryCreateSession stores (sessionID, expiresAt) for employeeID unless an unexpired
	// session already exists, in which case it returns false and changes nothing.
	TryCreateSession(ctx context.Context, employeeID, sessionID string, expiresAt time.Time) (bool, error)

	// IsSessionValid reports whether employeeID's live session has exactly sessionID.
	IsSessionValid(ctx context.Context, employeeID, sessionID string) (bool, error)

	// RemoveSession drops employeeID's session. With a nil sessionID the removal is
	// unconditional; otherwise it happens only if the stored identifier matches.
	RemoveSession(ctx context.Context, employeeID string, sessionID *string) error
}
