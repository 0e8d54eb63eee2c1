package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/model"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
	"github.com/studiva/classwork-backend/internal/validator"
)

// ProgressHandler handles the student's own course progress records.
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// ListProgress godoc
// GET /api/v1/student/progress
// Returns all progress records owned by the caller.
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.progressService.List(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": records})
}

// UpsertProgress godoc
// PUT /api/v1/student/progress
// Creates or updates a progress record for the caller. The owner is always
// the session's student; a record can never be written for someone else.
func (h *ProgressHandler) UpsertProgress(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpsertProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.progressService.Upsert(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": record})
}

// DeleteProgress godoc
// DELETE /api/v1/student/progress/:project_id
// Removes one of the caller's progress records.
func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	projectID := c.Param("project_id")
	if projectID == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.progressService.Delete(c.Request.Context(), id, projectID); err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
