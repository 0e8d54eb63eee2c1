package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/studiva/classwork-backend/internal/model"
)

// ErrInvalidStatusFilter reports an unknown assignment status filter value.
var ErrInvalidStatusFilter = errors.New("invalid assignment status filter")

// AssignmentOverview is an assignment as shown to a student, with the
// student's current submission overlaid when one exists.
type AssignmentOverview struct {
	model.Assignment
	Submission *model.Submission `json:"submission,omitempty"`
}

// AssignmentService lists assignments scoped to the caller's classroom.
type AssignmentService struct {
	guard       *GuardService
	assignments AssignmentStore
	submissions SubmissionStore
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(guard *GuardService, assignments AssignmentStore, submissions SubmissionStore) *AssignmentService {
	return &AssignmentService{guard: guard, assignments: assignments, submissions: submissions}
}

// Get returns a single assignment in the caller's classroom. For students
// the current submission is overlaid when one exists.
func (s *AssignmentService) Get(ctx context.Context, id *model.Identity, assignmentID uuid.UUID) (*AssignmentOverview, error) {
	a, err := s.guard.AuthorizeAssignment(ctx, id, assignmentID)
	if err != nil {
		return nil, err
	}

	overview := &AssignmentOverview{Assignment: *a}
	if id.IsStudent() {
		sub, err := s.submissions.GetCurrent(ctx, a.ID, id.SubjectID)
		if err == nil {
			overview.Submission = sub
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get current submission: %w", err)
		}
	}
	return overview, nil
}

// List returns assignments in the caller's classroom, optionally filtered
// by status, with the caller's current submission per assignment. Without
// a filter, draft and archived assignments stay hidden from students.
func (s *AssignmentService) List(ctx context.Context, id *model.Identity, statusFilter string) ([]AssignmentOverview, error) {
	var status *model.AssignmentStatus
	if statusFilter != "" {
		st := model.AssignmentStatus(statusFilter)
		switch st {
		case model.AssignmentStatusDraft, model.AssignmentStatusActive,
			model.AssignmentStatusClosed, model.AssignmentStatusArchived:
			status = &st
		default:
			return nil, ErrInvalidStatusFilter
		}
	}

	assignments, err := s.assignments.ListByClassroom(ctx, id.ClassroomID, status)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	overviews := make([]AssignmentOverview, 0, len(assignments))

	if id.IsStudent() {
		subs, err := s.submissions.ListCurrentByStudent(ctx, id.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		subMap := make(map[uuid.UUID]*model.Submission, len(subs))
		for i := range subs {
			subMap[subs[i].AssignmentID] = &subs[i]
		}
		for _, a := range assignments {
			overviews = append(overviews, AssignmentOverview{Assignment: a, Submission: subMap[a.ID]})
		}
		return overviews, nil
	}

	for _, a := range assignments {
		overviews = append(overviews, AssignmentOverview{Assignment: a})
	}
	return overviews, nil
}
