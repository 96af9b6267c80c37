package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// draftHandler handles HTTP requests for an employee's own drafts.
type draftHandler struct {
	draftService    portssvc.DraftSvcFacade
	workflowService portssvc.WorkflowSvcFacade
}

func newDraftHandler(ds portssvc.DraftSvcFacade, ws portssvc.WorkflowSvcFacade) *draftHandler {
	return &draftHandler{draftService: ds, workflowService: ws}
}

// createDraft godoc
// @Summary Save a new draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param draft body dto.CreateDraftRequest true "Draft details"
// @Success 201 {object} dto.DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts [post]
func (h *draftHandler) createDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}

	draft, err := h.draftService.CreateDraft(c.Request.Context(), caller, req)
	if err != nil {
		writeServiceError(c, err, "create draft")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft created", slog.String("draft_id", draft.DraftID))
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

// listDrafts godoc
// @Summary List own drafts
// @Tags drafts
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListDraftsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts [get]
func (h *draftHandler) listDrafts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListDraftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	drafts, err := h.draftService.ListDrafts(c.Request.Context(), caller, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(c, err, "list drafts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDraftsResponse(drafts))
}

// getDraft godoc
// @Summary Get an own draft
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts/{draftID} [get]
func (h *draftHandler) getDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	draft, err := h.draftService.GetDraft(c.Request.Context(), caller, c.Param("draftID"))
	if err != nil {
		writeServiceError(c, err, "get draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

// updateDraft godoc
// @Summary Replace the fields of an own draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param draftID path string true "Draft ID"
// @Param draft body dto.UpdateDraftRequest true "Draft details"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts/{draftID} [put]
func (h *draftHandler) updateDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request body")
		return
	}

	draft, err := h.draftService.UpdateDraft(c.Request.Context(), caller, c.Param("draftID"), req)
	if err != nil {
		writeServiceError(c, err, "update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

// deleteDraft godoc
// @Summary Delete an own draft
// @Tags drafts
// @Param draftID path string true "Draft ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts/{draftID} [delete]
func (h *draftHandler) deleteDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.draftService.DeleteDraft(c.Request.Context(), caller, c.Param("draftID")); err != nil {
		writeServiceError(c, err, "delete draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// submitDraft godoc
// @Summary Submit a draft for approval
// @Description Creates a Submitted request from the draft and deletes the draft atomically.
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft ID"
// @Success 201 {object} dto.RequestResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate submission"
// @Security BearerAuth
// @Router /drafts/{draftID}/submit [post]
func (h *draftHandler) submitDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	req, err := h.workflowService.Submit(c.Request.Context(), caller, c.Param("draftID"))
	if err != nil {
		writeServiceError(c, err, "submit draft")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft submitted", slog.String("request_id", req.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(req))
}
