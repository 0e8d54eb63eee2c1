package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/model"
)

// Submission lifecycle errors.
var (
	ErrStateConflict          = errors.New("action not allowed in the current submission state")
	ErrSubmissionWindowClosed = errors.New("submission window is closed")
	ErrMaxAttemptsReached     = errors.New("maximum attempts reached")
	ErrEmptySubmission        = errors.New("submission has no content and no files")
	ErrGradeOutOfRange        = errors.New("grade is outside the allowed range")
)

// SubmissionService drives the submission lifecycle:
// draft → submitted → graded | revision_requested → submitted. Every
// operation authorizes through the guard before touching anything.
type SubmissionService struct {
	guard       *GuardService
	submissions SubmissionStore
	files       FileStore
	log         zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(guard *GuardService, submissions SubmissionStore, files FileStore, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		guard:       guard,
		submissions: submissions,
		files:       files,
		log:         log.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// UpsertDraft creates the caller's draft for an assignment, or replaces the
// content of the existing editable submission. Calling it twice never
// produces a second draft: the second call updates the first one.
func (s *SubmissionService) UpsertDraft(ctx context.Context, id *model.Identity, assignmentID uuid.UUID, content string) (*model.Submission, error) {
	a, err := s.guard.AuthorizeAssignment(ctx, id, assignmentID)
	if err != nil {
		return nil, err
	}

	cur, err := s.submissions.GetCurrent(ctx, assignmentID, id.SubjectID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get current submission: %w", err)
	}

	if cur != nil {
		if !cur.Editable() {
			return nil, ErrStateConflict
		}
		updated, err := s.submissions.UpdateContent(ctx, cur.ID, content)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Transitioned under us between read and write.
				return nil, ErrStateConflict
			}
			return nil, fmt.Errorf("update draft: %w", err)
		}
		return updated, nil
	}

	if !a.AcceptsWork() {
		return nil, ErrSubmissionWindowClosed
	}

	draft := &model.Submission{
		AssignmentID:  assignmentID,
		StudentID:     id.SubjectID,
		AttemptNumber: 1,
		Content:       content,
	}
	if err := s.submissions.CreateDraft(ctx, draft); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a concurrent create — the other draft wins, update it.
			existing, fetchErr := s.submissions.GetCurrent(ctx, assignmentID, id.SubjectID)
			if fetchErr != nil {
				return nil, fmt.Errorf("concurrent draft detected, fetch failed: %w", fetchErr)
			}
			updated, updErr := s.submissions.UpdateContent(ctx, existing.ID, content)
			if updErr != nil {
				return nil, fmt.Errorf("concurrent draft detected, update failed: %w", updErr)
			}
			return updated, nil
		}
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return draft, nil
}

// Submit finalizes the caller's submission. A draft transitions to
// submitted; a revision-requested submission resubmits with the next
// attempt number. Lateness is stamped here and never recomputed.
func (s *SubmissionService) Submit(ctx context.Context, id *model.Identity, submissionID uuid.UUID) (*model.Submission, error) {
	sub, a, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	isLate := a.IsLateAt(now)

	switch sub.Status {
	case model.SubmissionStatusDraft:
		if isLate && !a.AllowLateSubmission {
			return nil, ErrSubmissionWindowClosed
		}
		if !a.AcceptsWork() {
			return nil, ErrSubmissionWindowClosed
		}
		if strings.TrimSpace(sub.Content) == "" {
			n, err := s.files.CountBySubmission(ctx, sub.ID)
			if err != nil {
				return nil, fmt.Errorf("count files: %w", err)
			}
			if n == 0 {
				return nil, ErrEmptySubmission
			}
		}
		updated, err := s.submissions.Submit(ctx, sub.ID, isLate)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrStateConflict
			}
			return nil, fmt.Errorf("submit: %w", err)
		}
		s.log.Info().
			Str("submission_id", updated.ID.String()).
			Int("attempt", updated.AttemptNumber).
			Bool("is_late", updated.IsLate).
			Msg("Submission submitted")
		return updated, nil

	case model.SubmissionStatusRevisionRequested:
		if !a.HasAttemptsLeft(sub.AttemptNumber) {
			return nil, ErrMaxAttemptsReached
		}
		updated, err := s.submissions.Resubmit(ctx, sub.ID, isLate)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// The statement re-checks status and the attempt cap; find
				// out which guard a concurrent writer tripped.
				fresh, readErr := s.submissions.GetByID(ctx, sub.ID)
				if readErr == nil && fresh.Status == model.SubmissionStatusRevisionRequested &&
					!a.HasAttemptsLeft(fresh.AttemptNumber) {
					return nil, ErrMaxAttemptsReached
				}
				return nil, ErrStateConflict
			}
			return nil, fmt.Errorf("resubmit: %w", err)
		}
		s.log.Info().
			Str("submission_id", updated.ID.String()).
			Int("attempt", updated.AttemptNumber).
			Msg("Submission resubmitted")
		return updated, nil

	default:
		return nil, ErrStateConflict
	}
}

// Grade records a teacher's grade on a submitted submission, applying the
// late penalty. Graded is terminal.
func (s *SubmissionService) Grade(ctx context.Context, id *model.Identity, submissionID uuid.UUID, rawGrade float64, feedback string) (*model.Submission, error) {
	sub, a, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubmissionStatusSubmitted {
		return nil, ErrStateConflict
	}
	if rawGrade < 0 || rawGrade > a.MaxPoints {
		return nil, ErrGradeOutOfRange
	}

	lateDays := 0
	if sub.IsLate && sub.SubmittedAt != nil && a.DueDate != nil {
		lateDays = LateDays(*a.DueDate, *sub.SubmittedAt)
	}
	effective := EffectiveGrade(rawGrade, a.MaxPoints, sub.IsLate, lateDays, a.LatePenaltyPercent, a.AllowLateSubmission)

	updated, err := s.submissions.Grade(ctx, sub.ID, effective, feedback)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStateConflict
		}
		return nil, fmt.Errorf("grade: %w", err)
	}
	s.log.Info().
		Str("submission_id", updated.ID.String()).
		Float64("raw_grade", rawGrade).
		Float64("effective_grade", effective).
		Int("late_days", lateDays).
		Msg("Submission graded")
	return updated, nil
}

// RequestRevision sends a submitted submission back to the student for
// another attempt.
func (s *SubmissionService) RequestRevision(ctx context.Context, id *model.Identity, submissionID uuid.UUID, feedback string) (*model.Submission, error) {
	sub, _, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubmissionStatusSubmitted {
		return nil, ErrStateConflict
	}

	updated, err := s.submissions.RequestRevision(ctx, sub.ID, feedback)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStateConflict
		}
		return nil, fmt.Errorf("request revision: %w", err)
	}
	return updated, nil
}

// ListByAssignment returns all submissions on an assignment in the
// caller's classroom. Teacher-side listing.
func (s *SubmissionService) ListByAssignment(ctx context.Context, id *model.Identity, assignmentID uuid.UUID) ([]model.Submission, error) {
	if _, err := s.guard.AuthorizeAssignment(ctx, id, assignmentID); err != nil {
		return nil, err
	}
	subs, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
