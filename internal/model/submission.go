package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus enumerates submission lifecycle states. These four are
// the only states that exist; an unknown status in the store is a data
// fault, not user input.
type SubmissionStatus string

const (
	SubmissionStatusDraft             SubmissionStatus = "draft"
	SubmissionStatusSubmitted         SubmissionStatus = "submitted"
	SubmissionStatusGraded            SubmissionStatus = "graded"
	SubmissionStatusRevisionRequested SubmissionStatus = "revision_requested"
)

// Valid reports whether s is one of the four known states.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusDraft, SubmissionStatusSubmitted,
		SubmissionStatusGraded, SubmissionStatusRevisionRequested:
		return true
	}
	return false
}

// Submission is one student's work on one assignment. AttemptNumber is
// strictly increasing per (assignment, student) and never resets.
type Submission struct {
	ID            uuid.UUID        `json:"id"`
	AssignmentID  uuid.UUID        `json:"assignment_id"`
	StudentID     int              `json:"student_id"`
	Status        SubmissionStatus `json:"status"`
	AttemptNumber int              `json:"attempt_number"`
	Content       string           `json:"content"`
	Grade         *float64         `json:"grade,omitempty"`
	Feedback      *string          `json:"feedback,omitempty"`
	SubmittedAt   *time.Time       `json:"submitted_at,omitempty"`
	GradedAt      *time.Time       `json:"graded_at,omitempty"`
	IsLate        bool             `json:"is_late"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Editable reports whether content and files may still change: only while
// the submission is a draft or sent back for revision.
func (s *Submission) Editable() bool {
	return s.Status == SubmissionStatusDraft || s.Status == SubmissionStatusRevisionRequested
}

// UpsertSubmissionRequest creates or updates the caller's draft for an
// assignment. Content may be empty while drafting; submit enforces that the
// final submission is non-empty or has files attached.
type UpsertSubmissionRequest struct {
	Content string `json:"content" binding:"max=100000"`
}

// GradeSubmissionRequest is the teacher payload grading a submission.
type GradeSubmissionRequest struct {
	Grade    *float64 `json:"grade" binding:"required,gte=0"`
	Feedback string   `json:"feedback" binding:"max=10000"`
}

// RequestRevisionRequest sends a submission back to the student.
type RequestRevisionRequest struct {
	Feedback string `json:"feedback" binding:"required,min=1,max=10000"`
}
