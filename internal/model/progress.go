package model

import "time"

// ProgressRecord tracks a student's completion of one course project,
// optionally with a quiz score. Keyed by (student_id, project_id).
type ProgressRecord struct {
	StudentID   int       `json:"student_id"`
	CourseID    string    `json:"course_id"`
	ProjectID   string    `json:"project_id"`
	QuizScore   *float64  `json:"quiz_score,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertProgressRequest records or updates progress for the caller.
type UpsertProgressRequest struct {
	CourseID  string   `json:"course_id" binding:"required,min=1,max=100"`
	ProjectID string   `json:"project_id" binding:"required,min=1,max=100"`
	QuizScore *float64 `json:"quiz_score" binding:"omitempty,gte=0,lte=100"`
}
