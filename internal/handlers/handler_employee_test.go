package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleEmployee(id string) *domain.Employee {
	manager := "mgr-1"
	return &domain.Employee{
		EmployeeID: id,
		Name:       "Eve",
		Email:      "eve@example.com",
		Role:       domain.RoleEmployee,
		Department: "Sales",
		ManagerID:  &manager,
		IsActive:   true,
	}
}

func (suite *RequestHandlerTestSuite) TestGetEmployee() {
	token := suite.loginAs("admin-1", domain.RoleAdmin)
	suite.mockEmployees.On("GetEmployee", mock.Anything, callerWithID("admin-1"), "emp-7").
		Return(sampleEmployee("emp-7"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/admin/employees/emp-7", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.EmployeeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("emp-7", resp.EmployeeID)
	suite.Equal("Sales", resp.Department)
	suite.NotContains(w.Body.String(), "password")

	suite.Run("unknown employee", func() {
		suite.mockEmployees.On("GetEmployee", mock.Anything, callerWithID("admin-1"), "ghost").
			Return(nil, apperrors.NewNotFoundError("employee")).Once()
		w := suite.do(http.MethodGet, "/api/v1/admin/employees/ghost", token, nil)
		suite.Equal(http.StatusNotFound, w.Code)
	})

	suite.Run("not an admin", func() {
		w := suite.do(http.MethodGet, "/api/v1/admin/employees/emp-7", suite.loginAs("mgr-1", domain.RoleManager), nil)
		suite.Equal(http.StatusForbidden, w.Code)
	})
	suite.mockEmployees.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestUpdateEmployee() {
	token := suite.loginAs("admin-1", domain.RoleAdmin)
	manager := "mgr-2"
	password := "a-new-password"
	body := dto.UpdateEmployeeRequest{
		Name:       "Eve Adams",
		Role:       domain.RoleManager,
		Department: "Ops",
		ManagerID:  &manager,
		Password:   &password,
	}
	updated := sampleEmployee("emp-7")
	updated.Name = body.Name
	updated.Role = body.Role
	updated.Department = body.Department
	updated.ManagerID = &manager
	suite.mockEmployees.On("UpdateEmployee", mock.Anything, callerWithID("admin-1"), "emp-7", body).
		Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/admin/employees/emp-7", token, body)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.EmployeeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Eve Adams", resp.Name)
	suite.Equal(string(domain.RoleManager), resp.Role)
	suite.Equal("Ops", resp.Department)
	suite.Equal("mgr-2", *resp.ManagerID)

	suite.Run("role outside the admin-managed set", func() {
		w := suite.do(http.MethodPut, "/api/v1/admin/employees/emp-7", token, map[string]any{
			"name": "Eve", "role": "Finance",
		})
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("protected account", func() {
		plain := dto.UpdateEmployeeRequest{Name: "Fin", Role: domain.RoleEmployee}
		suite.mockEmployees.On("UpdateEmployee", mock.Anything, callerWithID("admin-1"), "fin-1", plain).
			Return(nil, apperrors.NewForbiddenError("this account cannot be modified")).Once()
		w := suite.do(http.MethodPut, "/api/v1/admin/employees/fin-1", token, plain)
		suite.Equal(http.StatusForbidden, w.Code)
	})
	suite.mockEmployees.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestListEmployeesIncludeInactive() {
	token := suite.loginAs("admin-1", domain.RoleAdmin)
	inactive := sampleEmployee("emp-9")
	inactive.IsActive = false
	suite.mockEmployees.On("ListEmployees", mock.Anything, callerWithID("admin-1"),
		dto.ListEmployeesParams{Limit: 20, Offset: 0, IncludeInactive: true}).
		Return([]domain.Employee{*sampleEmployee("emp-7"), *inactive}, nil).Once()
	suite.mockEmployees.On("ListEmployees", mock.Anything, callerWithID("admin-1"),
		dto.ListEmployeesParams{Limit: 20, Offset: 0}).
		Return([]domain.Employee{*sampleEmployee("emp-7")}, nil).Once()

	var all dto.ListEmployeesResponse
	w := suite.do(http.MethodGet, "/api/v1/admin/employees?includeInactive=true", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &all))
	suite.Len(all.Employees, 2)

	var active dto.ListEmployeesResponse
	w = suite.do(http.MethodGet, "/api/v1/admin/employees", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &active))
	suite.Len(active.Employees, 1)
	suite.mockEmployees.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestDashboard() {
	token := suite.loginAs("fin-1", domain.RoleFinance)
	top := sampleRequest(domain.StatusApproved, 2)
	stats := &domain.DashboardStats{
		Year:             2024,
		Month:            2,
		MonthlyTotal:     decimal.RequireFromString("142.10"),
		PendingApprovals: 3,
		ByCategory: []domain.CategoryTotal{
			{CategoryID: "travel", CategoryName: "Travel", RequestCount: 2, TotalAmount: decimal.RequireFromString("142.10")},
		},
		TopClaims: []domain.Request{*top},
	}
	suite.mockReporting.On("Dashboard", mock.Anything, callerWithID("fin-1"), 2024, 2).Return(stats, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/finance/reports/dashboard?year=2024&month=2", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.DashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.RequireFromString("142.10").Equal(resp.MonthlyTotal))
	suite.EqualValues(3, resp.PendingApprovals)
	suite.Len(resp.ByCategory, 1)
	suite.Require().Len(resp.TopClaims, 1)
	suite.Equal("req-1", resp.TopClaims[0].RequestID)
	suite.Equal(top.DateOfExpense.Format(time.DateOnly), resp.TopClaims[0].DateOfExpense)

	suite.Run("month out of range", func() {
		w := suite.do(http.MethodGet, "/api/v1/finance/reports/dashboard?year=2024&month=13", token, nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("employees cannot see it", func() {
		w := suite.do(http.MethodGet, "/api/v1/finance/reports/dashboard?year=2024&month=2", suite.loginAs("emp-1", domain.RoleEmployee), nil)
		suite.Equal(http.StatusForbidden, w.Code)
	})
	suite.mockReporting.AssertExpectations(suite.T())
}
