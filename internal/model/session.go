package model

import "time"

// Role distinguishes student and teacher sessions.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Session is an opaque token binding issued by the external login flow.
// This core only ever reads sessions; it never creates them.
type Session struct {
	Token     string    `json:"-"`
	SubjectID int       `json:"subject_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity is the resolved, trusted caller identity for one request.
// Handlers must treat it as the only source of student/classroom identity
// and never accept a client-supplied student id instead.
type Identity struct {
	SubjectID   int  `json:"subject_id"`
	ClassroomID int  `json:"classroom_id"`
	Role        Role `json:"role"`
}

// IsStudent reports whether the identity belongs to a student session.
func (i *Identity) IsStudent() bool { return i.Role == RoleStudent }
