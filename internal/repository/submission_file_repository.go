package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiva/classwork-backend/internal/model"
)

// SubmissionFileRepository handles submission file metadata access.
type SubmissionFileRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionFileRepository creates a new SubmissionFileRepository.
func NewSubmissionFileRepository(pool *pgxpool.Pool) *SubmissionFileRepository {
	return &SubmissionFileRepository{pool: pool}
}

const fileColumns = `id, submission_id, file_name, storage_path, size_bytes, content_type, uploaded_at`

// GetByID retrieves a file record by ID.
func (r *SubmissionFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SubmissionFile, error) {
	f := &model.SubmissionFile{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM submission_files WHERE id = $1`, id,
	).Scan(&f.ID, &f.SubmissionID, &f.FileName, &f.StoragePath, &f.SizeBytes, &f.ContentType, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListBySubmission retrieves all files attached to a submission.
func (r *SubmissionFileRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.SubmissionFile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+fileColumns+` FROM submission_files
		 WHERE submission_id = $1
		 ORDER BY uploaded_at`, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.SubmissionFile
	for rows.Next() {
		var f model.SubmissionFile
		if err := rows.Scan(&f.ID, &f.SubmissionID, &f.FileName, &f.StoragePath, &f.SizeBytes, &f.ContentType, &f.UploadedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// CountBySubmission returns the number of files attached to a submission.
func (r *SubmissionFileRepository) CountBySubmission(ctx context.Context, submissionID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM submission_files WHERE submission_id = $1`, submissionID,
	).Scan(&n)
	return n, err
}

// Create inserts a new file metadata record.
func (r *SubmissionFileRepository) Create(ctx context.Context, f *model.SubmissionFile) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submission_files (submission_id, file_name, storage_path, size_bytes, content_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, uploaded_at`,
		f.SubmissionID, f.FileName, f.StoragePath, f.SizeBytes, f.ContentType,
	).Scan(&f.ID, &f.UploadedAt)
}

// Delete removes a file record by ID.
func (r *SubmissionFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM submission_files WHERE id = $1`, id)
	return err
}
