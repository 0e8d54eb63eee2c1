package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/model"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
	"github.com/studiva/classwork-backend/internal/validator"
)

// GradingHandler handles the teacher side of the submission lifecycle.
type GradingHandler struct {
	submissionService *service.SubmissionService
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(submissionService *service.SubmissionService) *GradingHandler {
	return &GradingHandler{submissionService: submissionService}
}

// GradeSubmission godoc
// POST /api/v1/teacher/submissions/:submission_id/grade
// Grades a submitted submission. Late penalties are applied from the
// lateness stamped at submission time.
func (h *GradingHandler) GradeSubmission(c *gin.Context) {
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

	var req model.GradeSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.submissionService.Grade(c.Request.Context(), id, submissionID, *req.Grade, req.Feedback)
	if err != nil {
		failSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

// RequestRevision godoc
// POST /api/v1/teacher/submissions/:submission_id/request-revision
// Sends a submitted submission back to the student for another attempt.
func (h *GradingHandler) RequestRevision(c *gin.Context) {
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

	var req model.RequestRevisionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.submissionService.RequestRevision(c.Request.Context(), id, submissionID, req.Feedback)
	if err != nil {
		failSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

// ListSubmissions godoc
// GET /api/v1/teacher/assignments/:assignment_id/submissions
// Lists every submission on an assignment in the teacher's classroom.
func (h *GradingHandler) ListSubmissions(c *gin.Context) {
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

	subs, err := h.submissionService.ListByAssignment(c.Request.Context(), id, assignmentID)
	if err != nil {
		failSubmissionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}
