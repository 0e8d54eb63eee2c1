package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
)

// AssignmentHandler lists assignments scoped to the caller's classroom.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// ListAssignments godoc
// GET /api/v1/student/assignments?status=
// Lists assignments in the caller's classroom with the caller's current
// submission overlaid. Assignments from other classrooms never appear.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	overviews, err := h.assignmentService.List(c.Request.Context(), id, c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusFilter) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"status": "must be one of draft, active, closed, archived"})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignments": overviews})
}

// GetAssignment godoc
// GET /api/v1/student/assignments/:assignment_id
// Returns one assignment in the caller's classroom.
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
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

	overview, err := h.assignmentService.Get(c.Request.Context(), id, assignmentID)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignment": overview})
}
