package middleware

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type for values this package stores in contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	callerKey    = contextKey("caller")
	sessionIDKey = contextKey("sessionID")
)

// GetCallerFromContext returns the authenticated caller placed by AuthMiddleware.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	return CallerFromCtx(c.Request.Context())
}

// CallerFromCtx is the context.Context flavour of GetCallerFromContext.
func CallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	if !ok || caller.EmployeeID == "" {
		return domain.Caller{}, false
	}
	return caller, true
}

// GetSessionIDFromContext returns the session (jti) of the presented token.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	id, ok := c.Request.Context().Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// WithCaller stores an authenticated caller and its session in ctx.
func WithCaller(ctx context.Context, caller domain.Caller, sessionID string) context.Context {
	ctx = context.WithValue(ctx, callerKey, caller)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
