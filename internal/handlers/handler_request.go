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

// requestHandler serves the request read side and the employee and manager transitions.
type requestHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

func newRequestHandler(ws portssvc.WorkflowSvcFacade) *requestHandler {
	return &requestHandler{workflowService: ws}
}

// listRequests godoc
// @Summary List visible requests
// @Description Employees see their own requests, managers their team's, finance and admins all. Newest first.
// @Tags requests
// @Produce json
// @Param status query string false "Status filter" Enums(SUBMITTED, APPROVED, REJECTED, PAID)
// @Param employeeID query string false "Owner filter"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created before (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	resp, err := h.workflowService.ListRequests(c.Request.Context(), caller, params)
	if err != nil {
		writeServiceError(c, err, "list requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listTeamPending godoc
// @Summary Requests awaiting the caller's decision
// @Tags requests
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/team-pending [get]
func (h *requestHandler) listTeamPending(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListTeamPendingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	resp, err := h.workflowService.ListTeamPending(c.Request.Context(), caller, params)
	if err != nil {
		writeServiceError(c, err, "list pending requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getRequest godoc
// @Summary Get a request
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	req, err := h.workflowService.GetRequest(c.Request.Context(), caller, c.Param("requestID"))
	if err != nil {
		writeServiceError(c, err, "get request")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(req))
}

// getHistory godoc
// @Summary Audit trail of a request
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.ListHistoryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/history [get]
func (h *requestHandler) getHistory(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID := c.Param("requestID")
	entries, err := h.workflowService.GetHistory(c.Request.Context(), caller, requestID)
	if err != nil {
		writeServiceError(c, err, "get request history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHistoryResponse(requestID, entries))
}

// approveRequest godoc
// @Summary Approve a submitted request
// @Tags requests
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param body body dto.ApproveRequest false "Optional comment"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} ErrorResponse "Not the employee's manager"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Failure 422 {object} ErrorResponse "Request is not Submitted"
// @Security BearerAuth
// @Router /requests/{requestID}/approve [post]
func (h *requestHandler) approveRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var body dto.ApproveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err, "request body")
			return
		}
	}

	req, err := h.workflowService.Approve(c.Request.Context(), caller, c.Param("requestID"), body.Comment)
	h.respondTransition(c, req, err, "approve request")
}

// rejectRequest godoc
// @Summary Reject a submitted request
// @Tags requests
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param body body dto.RejectRequest true "Mandatory comment"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/reject [post]
func (h *requestHandler) rejectRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var body dto.RejectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err, "request body")
		return
	}

	req, err := h.workflowService.Reject(c.Request.Context(), caller, c.Param("requestID"), body.Comment)
	h.respondTransition(c, req, err, "reject request")
}

// resubmitRequest godoc
// @Summary Resubmit an own rejected request
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/resubmit [post]
func (h *requestHandler) resubmitRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	req, err := h.workflowService.Resubmit(c.Request.Context(), caller, c.Param("requestID"))
	h.respondTransition(c, req, err, "resubmit request")
}

// payRequest godoc
// @Summary Record payment of an approved request
// @Tags finance
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param body body dto.PayRequest false "Optional notes"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Request is not Approved"
// @Security BearerAuth
// @Router /finance/requests/{requestID}/pay [post]
func (h *requestHandler) payRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var body dto.PayRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			bindError(c, err, "request body")
			return
		}
	}

	req, err := h.workflowService.Pay(c.Request.Context(), caller, c.Param("requestID"), body.Notes)
	h.respondTransition(c, req, err, "pay request")
}

func (h *requestHandler) respondTransition(c *gin.Context, req *domain.Request, err error, action string) {
	if err != nil {
		writeServiceError(c, err, action)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Request transitioned",
		slog.String("request_id", req.RequestID),
		slog.String("status", string(req.Status)),
		slog.Int64("version", int64(req.Version)),
	)
	c.JSON(http.StatusOK, dto.ToRequestResponse(req))
}
