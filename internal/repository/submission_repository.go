package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// SubmissionRepository handles submission data access. Every state change
// is a single guarded UPDATE whose WHERE clause re-checks the source
// status, so a concurrent writer surfaces as pgx.ErrNoRows instead of a
// lost write.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, assignment_id, student_id, status, attempt_number,
	content, grade, feedback, submitted_at, graded_at, is_late, created_at, updated_at`

func scanSubmission(row interface{ Scan(...any) error }) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.Status, &s.AttemptNumber,
		&s.Content, &s.Grade, &s.Feedback, &s.SubmittedAt, &s.GradedAt, &s.IsLate,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a submission by ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
}

// GetCurrent retrieves the student's current submission for an assignment:
// the highest attempt, draft included.
func (r *SubmissionRepository) GetCurrent(ctx context.Context, assignmentID uuid.UUID, studentID int) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE assignment_id = $1 AND student_id = $2
		 ORDER BY attempt_number DESC, updated_at DESC
		 LIMIT 1`, assignmentID, studentID))
}

// ListCurrentByStudent retrieves the student's current submission per
// assignment, for the assignment list overlay.
func (r *SubmissionRepository) ListCurrentByStudent(ctx context.Context, studentID int) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT ON (assignment_id) `+submissionColumns+`
		 FROM submissions
		 WHERE student_id = $1
		 ORDER BY assignment_id, attempt_number DESC, updated_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

// ListByAssignment retrieves all submissions for an assignment, newest
// attempt first per student. Teacher-side listing.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE assignment_id = $1
		 ORDER BY student_id, attempt_number DESC`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

// CreateDraft inserts a new draft. The partial unique index on
// (assignment_id, student_id) WHERE status='draft' makes concurrent creates
// collide; the loser gets pgx.ErrNoRows and should fetch the existing draft.
func (r *SubmissionRepository) CreateDraft(ctx context.Context, s *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (assignment_id, student_id, status, attempt_number, content)
		 VALUES ($1, $2, 'draft', $3, $4)
		 ON CONFLICT DO NOTHING
		 RETURNING `+submissionColumns,
		s.AssignmentID, s.StudentID, s.AttemptNumber, s.Content,
	).Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.Status, &s.AttemptNumber,
		&s.Content, &s.Grade, &s.Feedback, &s.SubmittedAt, &s.GradedAt, &s.IsLate,
		&s.CreatedAt, &s.UpdatedAt)
}

// UpdateContent replaces the content of an editable submission.
func (r *SubmissionRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`UPDATE submissions
		 SET content = $2, updated_at = NOW()
		 WHERE id = $1 AND status IN ('draft', 'revision_requested')
		 RETURNING `+submissionColumns, id, content))
}

// Submit transitions a draft to submitted, stamping lateness.
func (r *SubmissionRepository) Submit(ctx context.Context, id uuid.UUID, isLate bool) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`UPDATE submissions
		 SET status = 'submitted', submitted_at = NOW(), is_late = $2, updated_at = NOW()
		 WHERE id = $1 AND status = 'draft'
		 RETURNING `+submissionColumns, id, isLate))
}

// Resubmit turns a revision-requested submission into the next attempt:
// a new row with attempt_number+1, carrying the reworked content. The prior
// attempt's row is left untouched as history. The attempt cap and the
// "only the latest attempt resubmits" rule are enforced inside the
// statement, and the unique (assignment_id, student_id, attempt_number)
// index makes concurrent resubmissions collide; the loser gets pgx.ErrNoRows.
func (r *SubmissionRepository) Resubmit(ctx context.Context, id uuid.UUID, isLate bool) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`INSERT INTO submissions
		     (assignment_id, student_id, status, attempt_number, content, submitted_at, is_late)
		 SELECT s.assignment_id, s.student_id, 'submitted', s.attempt_number + 1,
		        s.content, NOW(), $2
		 FROM submissions s
		 JOIN assignments a ON a.id = s.assignment_id
		 WHERE s.id = $1 AND s.status = 'revision_requested'
		   AND (a.max_attempts = 0 OR s.attempt_number < a.max_attempts)
		   AND NOT EXISTS (
		       SELECT 1 FROM submissions later
		       WHERE later.assignment_id = s.assignment_id
		         AND later.student_id = s.student_id
		         AND later.attempt_number > s.attempt_number)
		 ON CONFLICT (assignment_id, student_id, attempt_number) DO NOTHING
		 RETURNING `+submissionColumns, id, isLate))
}

// Grade transitions a submitted submission to graded.
func (r *SubmissionRepository) Grade(ctx context.Context, id uuid.UUID, grade float64, feedback string) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`UPDATE submissions
		 SET status = 'graded', grade = $2, feedback = $3, graded_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND status = 'submitted'
		 RETURNING `+submissionColumns, id, grade, feedback))
}

// RequestRevision sends a submitted submission back to the student.
func (r *SubmissionRepository) RequestRevision(ctx context.Context, id uuid.UUID, feedback string) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`UPDATE submissions
		 SET status = 'revision_requested', feedback = $2, updated_at = NOW()
		 WHERE id = $1 AND status = 'submitted'
		 RETURNING `+submissionColumns, id, feedback))
}
