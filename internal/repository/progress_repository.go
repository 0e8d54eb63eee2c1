package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// ProgressRepository handles course progress data access.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// ListByStudent retrieves all progress records for one student.
func (r *ProgressRepository) ListByStudent(ctx context.Context, studentID int) ([]model.ProgressRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, course_id, project_id, quiz_score, completed_at, updated_at
		 FROM progress
		 WHERE student_id = $1
		 ORDER BY completed_at`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ProgressRecord
	for rows.Next() {
		var p model.ProgressRecord
		if err := rows.Scan(&p.StudentID, &p.CourseID, &p.ProjectID, &p.QuizScore, &p.CompletedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// Upsert inserts or updates the record keyed by (student_id, project_id).
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.ProgressRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO progress (student_id, course_id, project_id, quiz_score)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, project_id)
		 DO UPDATE SET course_id = EXCLUDED.course_id,
		               quiz_score = COALESCE(EXCLUDED.quiz_score, progress.quiz_score),
		               updated_at = NOW()
		 RETURNING completed_at, updated_at`,
		p.StudentID, p.CourseID, p.ProjectID, p.QuizScore,
	).Scan(&p.CompletedAt, &p.UpdatedAt)
}

// Delete removes one progress record. Returns the number of rows removed
// so the caller can distinguish a no-op from a delete.
func (r *ProgressRepository) Delete(ctx context.Context, studentID int, projectID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM progress WHERE student_id = $1 AND project_id = $2`,
		studentID, projectID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
