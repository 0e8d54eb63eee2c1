package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/model"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
	"github.com/studiva/classwork-backend/internal/validator"
)

// SubmissionHandler handles the student side of the submission lifecycle.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// UpsertDraft godoc
// PUT /api/v1/student/assignments/:assignment_id/submission
// Creates the caller's draft for an assignment or updates its content.
// Repeating the call with the same content is a no-op, not an error.
func (h *SubmissionHandler) UpsertDraft(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.submissionService.UpsertDraft(c.Request.Context(), id, assignmentID, req.Content)
	if err != nil {
		failSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

// Submit godoc
// POST /api/v1/student/submissions/:submission_id/submit
// Moves the caller's draft to submitted, or resubmits after a revision
// request. Lateness is stamped at this moment, never recomputed later.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	submissionID, err := uuid.Parse(c.Param("submission_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sub, err := h.submissionService.Submit(c.Request.Context(), id, submissionID)
	if err != nil {
		failSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

// failSubmissionError maps submission lifecycle errors onto the response
// taxonomy. Unknown errors become 500 without leaking detail.
func failSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
	case errors.Is(err, service.ErrSubmissionWindowClosed):
		response.Fail(c, http.StatusConflict, response.ErrSubmissionWindowClosed)
	case errors.Is(err, service.ErrMaxAttemptsReached):
		response.Fail(c, http.StatusConflict, response.ErrMaxAttemptsReached)
	case errors.Is(err, service.ErrStateConflict):
		response.Fail(c, http.StatusConflict, response.ErrStateConflict)
	case errors.Is(err, service.ErrEmptySubmission):
		response.Fail(c, http.StatusBadRequest, response.ErrEmptySubmission)
	case errors.Is(err, service.ErrGradeOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrGradeOutOfRange)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
