package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/handlers"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/SscSPs/expense_tracker/internal/repositories/session"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RequestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	sessions     *session.MemoryStore
	mockWorkflow *MockWorkflowService
	mockDrafts   *MockDraftService
	mockAuth      *MockAuthService
	mockEmployees *MockEmployeeService
	mockReporting *MockReportingService
}

func (suite *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		IsProduction:       true,
		JWTSecret:          "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "expense-tracker",
		JWTAudience:        "expense-tracker-users",
		LoginRateLimit:     "1000-M",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	suite.sessions = session.NewMemoryStore()
	suite.mockWorkflow = new(MockWorkflowService)
	suite.mockDrafts = new(MockDraftService)
	suite.mockAuth = new(MockAuthService)
	suite.mockEmployees = new(MockEmployeeService)
	suite.mockReporting = new(MockReportingService)

	container := &portssvc.ServiceContainer{
		Workflow: suite.mockWorkflow,
		Draft:    suite.mockDrafts,
		Auth:      suite.mockAuth,
		Employee:  suite.mockEmployees,
		Reporting: suite.mockReporting,
		Sessions:  suite.sessions,
	}
	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, suite.cfg, container, nil))
}

// loginAs mints a token for a live session of employeeID.
func (suite *RequestHandlerTestSuite) loginAs(employeeID string, role domain.Role) string {
	sessionID := uuid.NewString()
	params := utils.TokenParams{
		Secret:   suite.cfg.JWTSecret,
		Expiry:   suite.cfg.JWTExpiryDuration,
		Issuer:   suite.cfg.JWTIssuer,
		Audience: suite.cfg.JWTAudience,
	}
	token, expiresAt, err := utils.GenerateAccessToken(employeeID, string(role), "Test "+string(role), sessionID, time.Now(), params)
	suite.Require().NoError(err)
	ok, err := suite.sessions.TryCreateSession(context.Background(), employeeID, sessionID, expiresAt)
	suite.Require().NoError(err)
	suite.Require().True(ok)
	return token
}

func (suite *RequestHandlerTestSuite) do(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func callerWithID(id string) interface{} {
	return mock.MatchedBy(func(c domain.Caller) bool { return c.EmployeeID == id })
}

func sampleRequest(status domain.RequestStatus, version domain.Version) *domain.Request {
	return &domain.Request{
		RequestID:     "req-1",
		EmployeeID:    "emp-1",
		CategoryID:    "travel",
		Subject:       "Taxi",
		Description:   "Airport",
		Amount:        decimal.RequireFromString("42.10"),
		DateOfExpense: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		Status:        status,
		Version:       version,
	}
}

// --- Test Cases ---

func (suite *RequestHandlerTestSuite) TestApprove_Success() {
	token := suite.loginAs("mgr-1", domain.RoleManager)
	comment := "ok"
	suite.mockWorkflow.On("Approve", mock.Anything, callerWithID("mgr-1"), "req-1",
		mock.MatchedBy(func(c *string) bool { return c != nil && *c == comment }),
	).Return(sampleRequest(domain.StatusApproved, 2), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", token, dto.ApproveRequest{Comment: &comment})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("APPROVED", resp.Status)
	suite.Equal(int64(2), resp.Version)
	suite.Equal("2024-02-03", resp.DateOfExpense)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestApprove_WithoutBody() {
	token := suite.loginAs("mgr-1", domain.RoleManager)
	suite.mockWorkflow.On("Approve", mock.Anything, callerWithID("mgr-1"), "req-1", (*string)(nil)).
		Return(sampleRequest(domain.StatusApproved, 2), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestApprove_EmployeeRoleIsForbidden() {
	token := suite.loginAs("emp-1", domain.RoleEmployee)

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockWorkflow.AssertNotCalled(suite.T(), "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestHandlerTestSuite) TestTransitionErrorsMapToStatusCodes() {
	token := suite.loginAs("mgr-1", domain.RoleManager)
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"concurrent modification", apperrors.ErrConcurrentModification, http.StatusConflict},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"outside team", apperrors.NewForbiddenError("not your team"), http.StatusForbidden},
		{"unknown request", apperrors.NewNotFoundError("request req-1"), http.StatusNotFound},
		{"storage failure", apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockWorkflow.On("Reject", mock.Anything, mock.Anything, "req-1", "no receipt").Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/requests/req-1/reject", token, dto.RejectRequest{Comment: "no receipt"})

			suite.Equal(tc.want, w.Code)
			var body handlers.ErrorResponse
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
			suite.NotEmpty(body.Error)
			suite.NotContains(body.Error, "boom")
		})
	}
}

func (suite *RequestHandlerTestSuite) TestReject_CommentRequired() {
	token := suite.loginAs("mgr-1", domain.RoleManager)

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/reject", token, map[string]string{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWorkflow.AssertNotCalled(suite.T(), "Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestHandlerTestSuite) TestPay_FinanceOnly() {
	employeeToken := suite.loginAs("emp-1", domain.RoleEmployee)
	w := suite.do(http.MethodPost, "/api/v1/finance/requests/req-1/pay", employeeToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	financeToken := suite.loginAs("fin-1", domain.RoleFinance)
	notes := "wire 7781"
	suite.mockWorkflow.On("Pay", mock.Anything, callerWithID("fin-1"), "req-1",
		mock.MatchedBy(func(n *string) bool { return n != nil && *n == notes }),
	).Return(sampleRequest(domain.StatusPaid, 3), nil).Once()

	w = suite.do(http.MethodPost, "/api/v1/finance/requests/req-1/pay", financeToken, dto.PayRequest{Notes: &notes})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestSubmitDraft() {
	token := suite.loginAs("emp-1", domain.RoleEmployee)
	suite.mockWorkflow.On("Submit", mock.Anything, callerWithID("emp-1"), "draft-1").
		Return(sampleRequest(domain.StatusSubmitted, 1), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/drafts/draft-1/submit", token, nil)
	suite.Equal(http.StatusCreated, w.Code)

	suite.mockWorkflow.On("Submit", mock.Anything, callerWithID("emp-1"), "draft-2").
		Return(nil, apperrors.ErrDuplicateSubmission).Once()
	w = suite.do(http.MethodPost, "/api/v1/drafts/draft-2/submit", token, nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestListRequests_PassesFilters() {
	token := suite.loginAs("fin-1", domain.RoleFinance)
	next := "next-page"
	suite.mockWorkflow.On("ListRequests", mock.Anything, callerWithID("fin-1"),
		mock.MatchedBy(func(p dto.ListRequestsParams) bool {
			return p.Limit == 5 && p.Status != nil && *p.Status == "APPROVED" && p.From != nil && p.From.Day() == 1
		}),
	).Return(&dto.ListRequestsResponse{
		Requests:  dto.ToRequestResponses([]domain.Request{*sampleRequest(domain.StatusApproved, 2)}),
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/requests?status=APPROVED&limit=5&from=2024-02-01", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListRequestsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Requests, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestListRequests_UnknownStatus() {
	token := suite.loginAs("fin-1", domain.RoleFinance)

	w := suite.do(http.MethodGet, "/api/v1/requests?status=DRAFT", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RequestHandlerTestSuite) TestTeamPendingRouteDoesNotShadowRequestID() {
	token := suite.loginAs("mgr-1", domain.RoleManager)
	suite.mockWorkflow.On("ListTeamPending", mock.Anything, callerWithID("mgr-1"), dto.ListTeamPendingParams{Limit: 20}).
		Return(&dto.ListRequestsResponse{Requests: dto.ToRequestResponses([]domain.Request{*sampleRequest(domain.StatusSubmitted, 1)})}, nil).Once()
	suite.mockWorkflow.On("GetRequest", mock.Anything, callerWithID("mgr-1"), "req-1").
		Return(sampleRequest(domain.StatusSubmitted, 1), nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/requests/team-pending", token, nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/requests/req-1", token, nil).Code)
	suite.mockWorkflow.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestAuthentication() {
	suite.Run("missing token", func() {
		w := suite.do(http.MethodGet, "/api/v1/requests", "", nil)
		suite.Equal(http.StatusUnauthorized, w.Code)
	})

	suite.Run("replaced session", func() {
		token := suite.loginAs("emp-1", domain.RoleEmployee)
		suite.Require().NoError(suite.sessions.RemoveSession(context.Background(), "emp-1", nil))

		w := suite.do(http.MethodGet, "/api/v1/requests", token, nil)
		suite.Equal(http.StatusUnauthorized, w.Code)
	})

	suite.mockWorkflow.AssertNotCalled(suite.T(), "ListRequests", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestHandlerTestSuite) TestLogin() {
	issued := &domain.IssuedToken{
		Token:     "signed-token",
		SessionID: "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
		Employee:  domain.Employee{EmployeeID: "emp-1", Name: "Asha", Role: domain.RoleEmployee},
	}
	suite.mockAuth.On("Login", mock.Anything, "asha@example.com", "pw").Return(issued, nil).Once()
	suite.mockAuth.On("Login", mock.Anything, "asha@example.com", "pw").Return(nil, apperrors.ErrSessionAlreadyActive).Once()
	suite.mockAuth.On("Login", mock.Anything, "asha@example.com", "bad").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "asha@example.com", Password: "pw"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.Equal("Employee", resp.Role)

	w = suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "asha@example.com", Password: "pw"})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "asha@example.com", Password: "bad"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestLogout_UsesPresentedSession() {
	token := suite.loginAs("emp-1", domain.RoleEmployee)
	suite.mockAuth.On("Logout", mock.Anything, "emp-1", mock.MatchedBy(func(sid string) bool { return sid != "" })).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/logout", token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestRequestHandler(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

func (suite *RequestHandlerTestSuite) TestTeamPendingPassesPageParameters() {
	token := suite.loginAs("mgr-1", domain.RoleManager)
	cursor := "cursor-1"
	next := "cursor-2"
	suite.mockWorkflow.On("ListTeamPending", mock.Anything, callerWithID("mgr-1"), dto.ListTeamPendingParams{Limit: 5, NextToken: &cursor}).
		Return(&dto.ListRequestsResponse{Requests: []dto.RequestResponse{}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/requests/team-pending?limit=5&nextToken=cursor-1", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListRequestsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("cursor-2", *resp.NextToken)

	suite.Run("limit above the maximum is rejected", func() {
		w := suite.do(http.MethodGet, "/api/v1/requests/team-pending?limit=500", token, nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})
	suite.mockWorkflow.AssertExpectations(suite.T())
}
