package model

import "time"

// Classroom groups students under one teacher-managed scope. Every
// assignment and every student belongs to exactly one classroom.
type Classroom struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	EnrollCode string    `json:"enroll_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
