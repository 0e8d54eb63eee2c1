package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
)

// ProfileHandler serves the authenticated student's own profile.
type ProfileHandler struct {
	studentService *service.StudentService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(studentService *service.StudentService) *ProfileHandler {
	return &ProfileHandler{studentService: studentService}
}

// GetProfile godoc
// GET /api/v1/student/profile
// Returns the caller's own profile. The student is identified by the
// session token alone; no student id is accepted from the request.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	profile, err := h.studentService.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}
