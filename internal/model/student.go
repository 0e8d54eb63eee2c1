package model

import "time"

// Student represents a student user. ClassroomID is immutable after
// creation; only teacher edits (out of scope here) may move a student.
type Student struct {
	ID          int       `json:"id"`
	ClassroomID int       `json:"classroom_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Teacher represents the owning teacher of a classroom. Only the grading
// surface resolves teacher identities; everything else is student-facing.
type Teacher struct {
	ID          int       `json:"id"`
	ClassroomID int       `json:"classroom_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileResponse is the student's own record with classroom context.
type ProfileResponse struct {
	Student   Student `json:"student"`
	Classroom string  `json:"classroom"`
}
