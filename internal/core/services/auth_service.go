package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// authService issues access tokens bound to the single live session of an employee.
type authService struct {
	BaseService
	employees portsrepo.EmployeeReader
	sessions  portssvc.SessionStore
	params    utils.TokenParams
	tracker   portssvc.EventTracker
	now       func() time.Time
}

// AuthServiceOption is a functional option for configuring the auth service
type AuthServiceOption func(*authService)

// WithAuthEventTracker reports logins and logouts to an analytics sink.
func WithAuthEventTracker(tracker portssvc.EventTracker) AuthServiceOption {
	return func(s *authService) {
		s.tracker = tracker
	}
}

// WithAuthClock overrides the time source used to mint tokens.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.now = now
	}
}

// TokenParamsFromConfig extracts the token settings from cfg.
func TokenParamsFromConfig(cfg *config.Config) utils.TokenParams {
	return utils.TokenParams{
		Secret:   cfg.JWTSecret,
		Expiry:   cfg.JWTExpiryDuration,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}
}

// NewAuthService creates a new auth service.
func NewAuthService(employees portsrepo.EmployeeReader, sessions portssvc.SessionStore, params utils.TokenParams, options ...AuthServiceOption) portssvc.AuthSvcFacade {
	svc := &authService{
		employees: employees,
		sessions:  sessions,
		params:    params,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) track(employeeID, event string) {
	if s.tracker != nil {
		s.tracker.Track(employeeID, event, nil)
	}
}

func (s *authService) lookup(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := s.employees.FindEmployeeByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up employee for login")
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	return employee, nil
}

// Login verifies the password and issues a token bound to a new session.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.IssuedToken, error) {
	employee, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, employee.PasswordHash) {
		s.LogInfo(ctx, "Login rejected: bad credentials", slog.String("employee_id", employee.EmployeeID))
		return nil, apperrors.ErrUnauthorized
	}
	return s.issue(ctx, employee)
}

// LoginWithEmail issues a token for an identity verified elsewhere.
func (s *authService) LoginWithEmail(ctx context.Context, email string) (*domain.IssuedToken, error) {
	employee, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, employee)
}

func (s *authService) issue(ctx context.Context, employee *domain.Employee) (*domain.IssuedToken, error) {
	if !employee.IsActive {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := utils.GenerateAccessToken(employee.EmployeeID, string(employee.Role), employee.Name, sessionID, s.now(), s.params)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("employee_id", employee.EmployeeID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	created, err := s.sessions.TryCreateSession(ctx, employee.EmployeeID, sessionID, expiresAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to create session", slog.String("employee_id", employee.EmployeeID))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if !created {
		s.LogInfo(ctx, "Login refused: session already active", slog.String("employee_id", employee.EmployeeID))
		return nil, apperrors.ErrSessionAlreadyActive
	}

	s.LogInfo(ctx, "Employee logged in", slog.String("employee_id", employee.EmployeeID))
	s.track(employee.EmployeeID, "employee_logged_in")
	return &domain.IssuedToken{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
		Employee:  *employee,
	}, nil
}

// Logout ends the caller's session if it is still the live one.
func (s *authService) Logout(ctx context.Context, employeeID, sessionID string) error {
	if err := s.sessions.RemoveSession(ctx, employeeID, &sessionID); err != nil {
		s.LogError(ctx, err, "Failed to remove session", slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.LogInfo(ctx, "Employee logged out", slog.String("employee_id", employeeID))
	s.track(employeeID, "employee_logged_out")
	return nil
}

// ForceLogout ends whatever session employeeID holds.
func (s *authService) ForceLogout(ctx context.Context, caller domain.Caller, employeeID string) error {
	if err := s.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.sessions.RemoveSession(ctx, employeeID, nil); err != nil {
		s.LogError(ctx, err, "Failed to force logout", slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.LogInfo(ctx, "Session revoked by admin", slog.String("employee_id", employeeID), slog.String("admin_id", caller.EmployeeID))
	return nil
}

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a random CSRF token for the OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns its payload.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
