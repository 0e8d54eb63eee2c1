package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus enumerates assignment lifecycle states.
type AssignmentStatus string

const (
	AssignmentStatusDraft    AssignmentStatus = "draft"
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusClosed   AssignmentStatus = "closed"
	AssignmentStatusArchived AssignmentStatus = "archived"
)

// UnlimitedAttempts is the MaxAttempts value meaning no attempt cap.
const UnlimitedAttempts = 0

// Assignment is a unit of work a teacher assigns to one classroom.
type Assignment struct {
	ID                  uuid.UUID        `json:"id"`
	ClassroomID         int              `json:"classroom_id"`
	CourseID            string           `json:"course_id"`
	Title               string           `json:"title"`
	Status              AssignmentStatus `json:"status"`
	DueDate             *time.Time       `json:"due_date,omitempty"`
	MaxPoints           float64          `json:"max_points"`
	AllowLateSubmission bool             `json:"allow_late_submission"`
	LatePenaltyPercent  float64          `json:"late_penalty_percent"`
	MaxAttempts         int              `json:"max_attempts"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// AcceptsWork reports whether the assignment can receive drafts or
// submissions at all: active, or closed with late submissions allowed.
func (a *Assignment) AcceptsWork() bool {
	return a.Status == AssignmentStatusActive ||
		(a.Status == AssignmentStatusClosed && a.AllowLateSubmission)
}

// IsLateAt reports whether a submission at the given instant is past the
// due date. Assignments without a due date are never late.
func (a *Assignment) IsLateAt(now time.Time) bool {
	return a.DueDate != nil && now.After(*a.DueDate)
}

// HasAttemptsLeft reports whether another attempt beyond current is allowed.
func (a *Assignment) HasAttemptsLeft(current int) bool {
	return a.MaxAttempts == UnlimitedAttempts || current < a.MaxAttempts
}
