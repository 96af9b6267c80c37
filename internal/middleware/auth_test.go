package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/repositories/session"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var params = utils.TokenParams{
	Secret:   "middleware-test-secret",
	Expiry:   time.Hour,
	Issuer:   "expense-tracker",
	Audience: "expense-tracker-users",
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) TryCreateSession(ctx context.Context, employeeID, sessionID string, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, employeeID, sessionID, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) IsSessionValid(ctx context.Context, employeeID, sessionID string) (bool, error) {
	args := m.Called(ctx, employeeID, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) RemoveSession(ctx context.Context, employeeID string, sessionID *string) error {
	return m.Called(ctx, employeeID, sessionID).Error(0)
}

// newProtectedRouter mounts a single handler that echoes the caller behind the auth chain.
func newProtectedRouter(store portssvc.SessionStore, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(params, store)}
	if len(roles) > 0 {
		chain = append(chain, middleware.RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		caller, ok := middleware.GetCallerFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		sid, _ := middleware.GetSessionIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"employeeID": caller.EmployeeID, "role": caller.Role, "sessionID": sid})
	})
	r.GET("/protected", chain...)
	return r
}

func mint(t *testing.T, store *session.MemoryStore, employeeID string, role domain.Role, sessionID string, now time.Time, p utils.TokenParams) string {
	t.Helper()
	token, expiresAt, err := utils.GenerateAccessToken(employeeID, string(role), "Tester", sessionID, now, p)
	require.NoError(t, err)
	if store != nil {
		ok, err := store.TryCreateSession(context.Background(), employeeID, sessionID, expiresAt)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return token
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("live session passes and exposes the caller", func(t *testing.T) {
		store := session.NewMemoryStore()
		token := mint(t, store, "emp-1", domain.RoleEmployee, "sid-1", time.Now(), params)

		w := get(newProtectedRouter(store), "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"employeeID":"emp-1","role":"Employee","sessionID":"sid-1"}`, w.Body.String())
	})

	t.Run("missing or malformed header", func(t *testing.T) {
		r := newProtectedRouter(session.NewMemoryStore())
		assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
		assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
		assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not-a-jwt").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		store := session.NewMemoryStore()
		token := mint(t, nil, "emp-1", domain.RoleEmployee, "sid-1", time.Now().Add(-2*time.Hour), params)

		w := get(newProtectedRouter(store), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("wrong audience", func(t *testing.T) {
		store := session.NewMemoryStore()
		other := params
		other.Audience = "someone-else"
		token := mint(t, store, "emp-1", domain.RoleEmployee, "sid-1", time.Now(), other)

		assert.Equal(t, http.StatusUnauthorized, get(newProtectedRouter(store), "Bearer "+token).Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		store := session.NewMemoryStore()
		token := mint(t, store, "emp-1", domain.Role("Auditor"), "sid-1", time.Now(), params)

		assert.Equal(t, http.StatusUnauthorized, get(newProtectedRouter(store), "Bearer "+token).Code)
	})

	t.Run("token of a replaced session", func(t *testing.T) {
		store := session.NewMemoryStore()
		stale := mint(t, store, "emp-1", domain.RoleEmployee, "sid-old", time.Now(), params)
		require.NoError(t, store.RemoveSession(context.Background(), "emp-1", nil))
		fresh := mint(t, store, "emp-1", domain.RoleEmployee, "sid-new", time.Now(), params)
		r := newProtectedRouter(store)

		assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+stale).Code)
		assert.Equal(t, http.StatusOK, get(r, "Bearer "+fresh).Code)
	})

	t.Run("session store failure", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("IsSessionValid", mock.Anything, "emp-1", "sid-1").Return(false, assert.AnError).Once()
		token := mint(t, nil, "emp-1", domain.RoleEmployee, "sid-1", time.Now(), params)

		w := get(newProtectedRouter(store), "Bearer "+token)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		store.AssertExpectations(t)
	})
}

func TestRequireRoles(t *testing.T) {
	store := session.NewMemoryStore()
	r := newProtectedRouter(store, domain.RoleFinance, domain.RoleAdmin)

	employee := mint(t, store, "emp-1", domain.RoleEmployee, "sid-e", time.Now(), params)
	financer := mint(t, store, "fin-1", domain.RoleFinance, "sid-f", time.Now(), params)

	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+employee).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+financer).Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, err := middleware.NewIPLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/login", middleware.RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	_, err = middleware.NewIPLimiter("lots")
	assert.Error(t, err)
}
