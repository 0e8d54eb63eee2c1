package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, classroom_id, display_name, email, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.ClassroomID, &s.DisplayName, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
