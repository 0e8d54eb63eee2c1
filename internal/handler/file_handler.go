package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/studiva/classwork-backend/internal/middleware"
	"github.com/studiva/classwork-backend/internal/model"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
	"github.com/studiva/classwork-backend/internal/validator"
)

// FileHandler brokers file attachments on submissions: upload tickets,
// finalization, listing, and deletion.
type FileHandler struct {
	uploadService *service.UploadService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(uploadService *service.UploadService) *FileHandler {
	return &FileHandler{uploadService: uploadService}
}

// CreateUploadTicket godoc
// POST /api/v1/student/submissions/:submission_id/upload-ticket
// Issues a short-lived single-use ticket for one file on the caller's
// submission. File type and size are checked before the ticket exists.
func (h *FileHandler) CreateUploadTicket(c *gin.Context) {
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

	var req model.CreateTicketRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ticket, err := h.uploadService.CreateTicket(c.Request.Context(), id, submissionID, &req)
	if err != nil {
		failUploadError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ticket": ticket})
}

// AttachFile godoc
// POST /api/v1/student/submissions/:submission_id/files
// Attaches a file record to the caller's submission. With a ticket in the
// body the ticket is redeemed; without one the metadata is validated and
// recorded directly.
func (h *FileHandler) AttachFile(c *gin.Context) {
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

	// A ticket key in the body selects the redeem shape; validation errors
	// then report against that shape instead of the direct-attach one.
	var body struct {
		Ticket *string `json:"ticket"`
	}
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	if body.Ticket != nil {
		var fin model.FinalizeUploadRequest
		if err := c.ShouldBindBodyWith(&fin, binding.JSON); err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
			return
		}
		file, err := h.uploadService.Finalize(c.Request.Context(), id, submissionID, fin.Ticket, fin.StoragePath)
		if err != nil {
			failUploadError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, gin.H{"file": file})
		return
	}

	var add model.AddFileRequest
	if err := c.ShouldBindBodyWith(&add, binding.JSON); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}

	file, err := h.uploadService.AddFile(c.Request.Context(), id, submissionID, &add)
	if err != nil {
		failUploadError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"file": file})
}

// ListFiles godoc
// GET /api/v1/student/submissions/:submission_id/files
func (h *FileHandler) ListFiles(c *gin.Context) {
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

	files, err := h.uploadService.ListFiles(c.Request.Context(), id, submissionID)
	if err != nil {
		failUploadError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"files": files})
}

// DeleteFile godoc
// DELETE /api/v1/student/files/:file_id
// Removes a file from one of the caller's still-editable submissions.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), id, fileID); err != nil {
		failUploadError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func failUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
	case errors.Is(err, service.ErrSubmissionNotEditable):
		response.Fail(c, http.StatusConflict, response.ErrStateConflict)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrInvalidTicket):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTicket)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
