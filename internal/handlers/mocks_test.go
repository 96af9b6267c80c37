package handlers_test

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) requestResult(args mock.Arguments) (*domain.Request, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockWorkflowService) Submit(ctx context.Context, caller domain.Caller, draftID string) (*domain.Request, error) {
	return m.requestResult(m.Called(ctx, caller, draftID))
}
func (m *MockWorkflowService) Approve(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.Request, error) {
	return m.requestResult(m.Called(ctx, caller, requestID, comment))
}
func (m *MockWorkflowService) Reject(ctx context.Context, caller domain.Caller, requestID string, comment string) (*domain.Request, error) {
	return m.requestResult(m.Called(ctx, caller, requestID, comment))
}
func (m *MockWorkflowService) Resubmit(ctx context.Context, caller domain.Caller, requestID string) (*domain.Request, error) {
	return m.requestResult(m.Called(ctx, caller, requestID))
}
func (m *MockWorkflowService) Pay(ctx context.Context, caller domain.Caller, requestID string, notes *string) (*domain.Request, error) {
	return m.requestResult(m.Called(ctx, caller, requestID, notes))
}
func (m *MockWorkflowService) GetRequest(ctx context.Context, caller domain.Caller, requestID string) (*domain.Request, error) {
	return m.requestResult(m.Called(ctx, caller, requestID))
}
func (m *MockWorkflowService) ListRequests(ctx context.Context, caller domain.Caller, params dto.ListRequestsParams) (*dto.ListRequestsResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListRequestsResponse), args.Error(1)
}
func (m *MockWorkflowService) ListTeamPending(ctx context.Context, caller domain.Caller, params dto.ListTeamPendingParams) (*dto.ListRequestsResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListRequestsResponse), args.Error(1)
}
func (m *MockWorkflowService) GetHistory(ctx context.Context, caller domain.Caller, requestID string) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, caller, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Mock DraftService ---
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) draftResult(args mock.Arguments) (*domain.Draft, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockDraftService) GetDraft(ctx context.Context, caller domain.Caller, draftID string) (*domain.Draft, error) {
	return m.draftResult(m.Called(ctx, caller, draftID))
}
func (m *MockDraftService) ListDrafts(ctx context.Context, caller domain.Caller, limit, offset int) ([]domain.Draft, error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Draft), args.Error(1)
}
func (m *MockDraftService) CreateDraft(ctx context.Context, caller domain.Caller, req dto.CreateDraftRequest) (*domain.Draft, error) {
	return m.draftResult(m.Called(ctx, caller, req))
}
func (m *MockDraftService) UpdateDraft(ctx context.Context, caller domain.Caller, draftID string, req dto.UpdateDraftRequest) (*domain.Draft, error) {
	return m.draftResult(m.Called(ctx, caller, draftID, req))
}
func (m *MockDraftService) DeleteDraft(ctx context.Context, caller domain.Caller, draftID string) error {
	return m.Called(ctx, caller, draftID).Error(0)
}

var _ portssvc.DraftSvcFacade = (*MockDraftService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) tokenResult(args mock.Arguments) (*domain.IssuedToken, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedToken), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.IssuedToken, error) {
	return m.tokenResult(m.Called(ctx, email, password))
}
func (m *MockAuthService) LoginWithEmail(ctx context.Context, email string) (*domain.IssuedToken, error) {
	return m.tokenResult(m.Called(ctx, email))
}
func (m *MockAuthService) Logout(ctx context.Context, employeeID, sessionID string) error {
	return m.Called(ctx, employeeID, sessionID).Error(0)
}
func (m *MockAuthService) ForceLogout(ctx context.Context, caller domain.Caller, employeeID string) error {
	return m.Called(ctx, caller, employeeID).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) employeeResult(args mock.Arguments) (*domain.Employee, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return m.employeeResult(m.Called(ctx, employeeID))
}
func (m *MockEmployeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return m.employeeResult(m.Called(ctx, email))
}
func (m *MockEmployeeService) ListEmployees(ctx context.Context, caller domain.Caller, params dto.ListEmployeesParams) ([]domain.Employee, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) GetEmployee(ctx context.Context, caller domain.Caller, employeeID string) (*domain.Employee, error) {
	return m.employeeResult(m.Called(ctx, caller, employeeID))
}
func (m *MockEmployeeService) CreateEmployee(ctx context.Context, caller domain.Caller, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	return m.employeeResult(m.Called(ctx, caller, req))
}
func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, caller domain.Caller, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	return m.employeeResult(m.Called(ctx, caller, employeeID, req))
}
func (m *MockEmployeeService) SetEmployeeStatus(ctx context.Context, caller domain.Caller, employeeID string, isActive bool) (*domain.Employee, error) {
	return m.employeeResult(m.Called(ctx, caller, employeeID, isActive))
}
func (m *MockEmployeeService) TeamMemberIDs(ctx context.Context, managerID string) ([]string, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ portssvc.EmployeeSvcFacade = (*MockEmployeeService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, caller domain.Caller, year, month int) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, caller, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}
func (m *MockReportingService) Dashboard(ctx context.Context, caller domain.Caller, year, month int) (*domain.DashboardStats, error) {
	args := m.Called(ctx, caller, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)
