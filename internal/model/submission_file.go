package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionFile is metadata for one file attached to a submission. Rows
// are created only through the upload broker after an ownership check.
type SubmissionFile struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	FileName     string    `json:"file_name"`
	StoragePath  string    `json:"storage_path"`
	SizeBytes    int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// UploadTicket is a short-lived, single-submission authorization to store
// one file. The token is a signed JWT; replay is blocked by a single-use
// registry entry keyed on the ticket id.
type UploadTicket struct {
	Ticket       string    `json:"ticket"`
	SubmissionID uuid.UUID `json:"submission_id"`
	FileName     string    `json:"file_name"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// CreateTicketRequest asks for an upload ticket scoped to one submission.
type CreateTicketRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required,min=1,max=255"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,gt=0"`
}

// FinalizeUploadRequest redeems a ticket once the file bytes are stored.
type FinalizeUploadRequest struct {
	Ticket      string `json:"ticket" binding:"required"`
	StoragePath string `json:"storage_path" binding:"required,min=1,max=1024"`
}

// AddFileRequest attaches metadata for an already-stored file directly.
type AddFileRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required,min=1,max=255"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,gt=0"`
	StoragePath string `json:"storage_path" binding:"required,min=1,max=1024"`
}
