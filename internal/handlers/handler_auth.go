package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as}
}

func toLoginResponse(issued *domain.IssuedToken) dto.LoginResponse {
	return dto.LoginResponse{
		Token:      issued.Token,
		EmployeeID: issued.Employee.EmployeeID,
		Role:       string(issued.Employee.Role),
		Name:       issued.Employee.Name,
		ExpiresAt:  issued.ExpiresAt,
	}
}

// Login godoc
// @Summary Employee login
// @Description Authenticates an employee and returns a JWT bound to a new session. Refused with 409 while another session is live.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Employee is inactive"
// @Failure 409 {object} ErrorResponse "A session is already active"
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	issued, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err, "log in")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee logged in", slog.String("employee_id", issued.Employee.EmployeeID))
	c.JSON(http.StatusOK, toLoginResponse(issued))
}

// Logout godoc
// @Summary Log out
// @Description Ends the session of the presented token. A token of an already replaced session is a no-op.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	if err := h.authService.Logout(c.Request.Context(), caller.EmployeeID, sessionID); err != nil {
		writeServiceError(c, err, "log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// ForceLogout godoc
// @Summary Force logout of an employee
// @Description Drops any live session of the employee so they can log in again.
// @Tags admin
// @Param employeeID path string true "Employee ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/employees/{employeeID}/session [delete]
func (h *AuthHandler) ForceLogout(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	employeeID := c.Param("employeeID")

	if err := h.authService.ForceLogout(c.Request.Context(), caller, employeeID); err != nil {
		writeServiceError(c, err, "force logout")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Session revoked", slog.String("target_employee_id", employeeID))
	c.Status(http.StatusNoContent)
}
