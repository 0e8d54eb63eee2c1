package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/studiva/classwork-backend/internal/model"
)

// Consumer-side views of the repository layer. The concrete pgx
// repositories satisfy these; tests substitute in-memory fakes so the
// ownership and lifecycle invariants stay testable without a database.

// SessionStore resolves opaque session tokens to identities.
type SessionStore interface {
	ResolveToken(ctx context.Context, token string) (*model.Identity, time.Time, error)
}

// StudentStore reads student records.
type StudentStore interface {
	GetByID(ctx context.Context, id int) (*model.Student, error)
}

// ClassroomStore reads classroom records.
type ClassroomStore interface {
	GetByID(ctx context.Context, id int) (*model.Classroom, error)
}

// AssignmentStore reads assignment records.
type AssignmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	ListByClassroom(ctx context.Context, classroomID int, status *model.AssignmentStatus) ([]model.Assignment, error)
}

// SubmissionStore reads and transitions submission records.
type SubmissionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	GetCurrent(ctx context.Context, assignmentID uuid.UUID, studentID int) (*model.Submission, error)
	ListCurrentByStudent(ctx context.Context, studentID int) ([]model.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Submission, error)
	CreateDraft(ctx context.Context, s *model.Submission) error
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Submission, error)
	Submit(ctx context.Context, id uuid.UUID, isLate bool) (*model.Submission, error)
	Resubmit(ctx context.Context, id uuid.UUID, isLate bool) (*model.Submission, error)
	Grade(ctx context.Context, id uuid.UUID, grade float64, feedback string) (*model.Submission, error)
	RequestRevision(ctx context.Context, id uuid.UUID, feedback string) (*model.Submission, error)
}

// FileStore reads and writes submission file metadata.
type FileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.SubmissionFile, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.SubmissionFile, error)
	CountBySubmission(ctx context.Context, submissionID uuid.UUID) (int, error)
	Create(ctx context.Context, f *model.SubmissionFile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProgressStore reads and writes course progress records.
type ProgressStore interface {
	ListByStudent(ctx context.Context, studentID int) ([]model.ProgressRecord, error)
	Upsert(ctx context.Context, p *model.ProgressRecord) error
	Delete(ctx context.Context, studentID int, projectID string) (int64, error)
}

// KeyCache is the subset of redis commands the services use. *redis.Client
// satisfies it; test fakes build results with redis.NewStringResult and
// friends.
type KeyCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
