package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// ClassroomRepository handles classroom data access.
type ClassroomRepository struct {
	pool *pgxpool.Pool
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

// GetByID retrieves a classroom by ID.
func (r *ClassroomRepository) GetByID(ctx context.Context, id int) (*model.Classroom, error) {
	cl := &model.Classroom{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, enroll_code, created_at, updated_at
		 FROM classrooms WHERE id = $1`, id,
	).Scan(&cl.ID, &cl.Name, &cl.EnrollCode, &cl.CreatedAt, &cl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cl, nil
}
