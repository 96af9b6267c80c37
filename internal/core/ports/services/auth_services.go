package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade issues and revokes session-bound access tokens.
type AuthSvcFacade interface {
	// Login verifies email/password and issues a token bound to a new session.
	Login(ctx context.Context, email, password string) (*domain.IssuedToken, error)

	// LoginWithEmail issues a token for an identity already verified by an external
	// provider. The employee must exist and be active.
	LoginWithEmail(ctx context.Context, email string) (*domain.IssuedToken, error)

	// Logout ends the session identified by sessionID, if it is still the live one.
	Logout(ctx context.Context, employeeID, sessionID string) error

	// ForceLogout ends any session of employeeID. Admin only.
	ForceLogout(ctx context.Context, caller domain.Caller, employeeID string) error
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
