package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to finance reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// getMonthlySummary godoc
// @Summary Monthly expense summary
// @Description Totals per category of non-rejected requests created in the month, plus the number still awaiting approval.
// @Tags finance
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /finance/reports/monthly [get]
func (h *reportingHandler) getMonthlySummary(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Generating monthly summary", slog.Int("year", params.Year), slog.Int("month", params.Month))

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), caller, params.Year, params.Month)
	if err != nil {
		writeServiceError(c, err, "generate monthly summary")
		return
	}
	c.JSON(http.StatusOK, dto.MonthlySummaryResponse{MonthlySummary: *summary})
}

// getDashboard godoc
// @Summary Finance dashboard
// @Description Month total and category split of non-rejected requests, all requests awaiting approval, and the five largest claims of the month.
// @Tags finance
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	stats, err := h.reportingService.Dashboard(c.Request.Context(), caller, params.Year, params.Month)
	if err != nil {
		writeServiceError(c, err, "build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(stats))
}
