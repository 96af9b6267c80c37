package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler serves the admin employee directory and the caller's own profile.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// getMe godoc
// @Summary Current employee
// @Tags employees
// @Produce json
// @Success 200 {object} dto.EmployeeResponse
// @Security BearerAuth
// @Router /employees/me [get]
func (h *employeeHandler) getMe(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeServiceError(c, err, "get employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags admin
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Param includeInactive query bool false "Include deactivated employees"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), caller, params)
	if err != nil {
		writeServiceError(c, err, "list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// createEmployee godoc
// @Summary Create an employee or manager
// @Tags admin
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email taken"
// @Security BearerAuth
// @Router /admin/employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), caller, req)
	if err != nil {
		writeServiceError(c, err, "create employee")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee created", slog.String("new_employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployee godoc
// @Summary Get an employee
// @Tags admin
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/employees/{employeeID} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), caller, c.Param("employeeID"))
	if err != nil {
		writeServiceError(c, err, "get employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee or manager
// @Description Changes name, role, department and manager. The password is replaced only when provided.
// @Tags admin
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Employee"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/employees/{employeeID} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}
	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), caller, c.Param("employeeID"), req)
	if err != nil {
		writeServiceError(c, err, "update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// setEmployeeStatus godoc
// @Summary Activate or deactivate an employee
// @Description Deactivation also ends the employee's live session.
// @Tags admin
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param status body dto.UpdateEmployeeStatusRequest true "Status"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/employees/{employeeID}/status [patch]
func (h *employeeHandler) setEmployeeStatus(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}
	employee, err := h.employeeService.SetEmployeeStatus(c.Request.Context(), caller, c.Param("employeeID"), *req.IsActive)
	if err != nil {
		writeServiceError(c, err, "update employee status")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
