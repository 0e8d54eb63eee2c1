package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/studiva/classwork-backend/internal/model"
)

// ErrAccessDenied is the single denial for every ownership-chain failure.
// A resource that does not exist and a resource that belongs to someone
// else produce the same error, so callers cannot probe for existence.
var ErrAccessDenied = errors.New("access denied")

// GuardService proves that a target resource sits inside the caller's
// allowed scope before any read is returned or write applied. Handlers
// call it exactly once per resource per request. It never mutates state.
type GuardService struct {
	assignments AssignmentStore
	submissions SubmissionStore
	files       FileStore
}

// NewGuardService creates a new GuardService.
func NewGuardService(assignments AssignmentStore, submissions SubmissionStore, files FileStore) *GuardService {
	return &GuardService{
		assignments: assignments,
		submissions: submissions,
		files:       files,
	}
}

// AuthorizeAssignment checks that the assignment belongs to the caller's
// classroom. Used when creating a first submission.
func (g *GuardService) AuthorizeAssignment(ctx context.Context, id *model.Identity, assignmentID uuid.UUID) (*model.Assignment, error) {
	a, err := g.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if a.ClassroomID != id.ClassroomID {
		return nil, ErrAccessDenied
	}
	return a, nil
}

// AuthorizeSubmission walks submission → student and submission →
// assignment → classroom. Students must own the submission outright;
// teachers reach any submission whose assignment is in their classroom.
func (g *GuardService) AuthorizeSubmission(ctx context.Context, id *model.Identity, submissionID uuid.UUID) (*model.Submission, *model.Assignment, error) {
	sub, err := g.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrAccessDenied
		}
		return nil, nil, fmt.Errorf("load submission: %w", err)
	}
	if id.IsStudent() && sub.StudentID != id.SubjectID {
		return nil, nil, ErrAccessDenied
	}

	a, err := g.AuthorizeAssignment(ctx, id, sub.AssignmentID)
	if err != nil {
		return nil, nil, err
	}
	return sub, a, nil
}

// AuthorizeFile walks the full chain file → submission → student →
// classroom. Owning a sibling submission is not enough; the file row must
// actually hang off the authorized submission.
func (g *GuardService) AuthorizeFile(ctx context.Context, id *model.Identity, fileID uuid.UUID) (*model.SubmissionFile, *model.Submission, error) {
	f, err := g.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrAccessDenied
		}
		return nil, nil, fmt.Errorf("load file: %w", err)
	}

	sub, _, err := g.AuthorizeSubmission(ctx, id, f.SubmissionID)
	if err != nil {
		return nil, nil, err
	}
	if f.SubmissionID != sub.ID {
		return nil, nil, ErrAccessDenied
	}
	return f, sub, nil
}
