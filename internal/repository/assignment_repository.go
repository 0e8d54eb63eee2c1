package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// AssignmentRepository handles assignment data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

const assignmentColumns = `id, classroom_id, course_id, title, status, due_date,
	max_points, allow_late_submission, late_penalty_percent, max_attempts,
	created_at, updated_at`

func scanAssignment(row interface{ Scan(...any) error }) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := row.Scan(&a.ID, &a.ClassroomID, &a.CourseID, &a.Title, &a.Status,
		&a.DueDate, &a.MaxPoints, &a.AllowLateSubmission, &a.LatePenaltyPercent,
		&a.MaxAttempts, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	return scanAssignment(r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
}

// ListByClassroom retrieves assignments scoped to one classroom, optionally
// filtered by status. Archived assignments are excluded unless asked for.
func (r *AssignmentRepository) ListByClassroom(ctx context.Context, classroomID int, status *model.AssignmentStatus) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE classroom_id = $1`
	args := []any{classroomID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	} else {
		query += ` AND status <> 'archived' AND status <> 'draft'`
	}
	query += ` ORDER BY due_date NULLS LAST, created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}
