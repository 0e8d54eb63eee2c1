package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/model"
)

// ErrProgressNotFound reports a delete against a record the caller never
// wrote. Safe to expose: the key space is the caller's own.
var ErrProgressNotFound = errors.New("progress record not found")

const progressCacheTTL = 5 * time.Minute

// ProgressService handles course progress reads and writes, scoped to the
// resolved identity. The identity is the only student selector; no
// operation accepts a student id.
type ProgressService struct {
	progress ProgressStore
	cache    KeyCache
	log      zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progress ProgressStore, cache KeyCache, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		progress: progress,
		cache:    cache,
		log:      log.With().Str("component", "progress_service").Logger(),
	}
}

// List returns the caller's progress records, cache first.
func (s *ProgressService) List(ctx context.Context, id *model.Identity) ([]model.ProgressRecord, error) {
	key := config.CacheKey.StudentProgressKey(id.SubjectID)

	if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
		var records []model.ProgressRecord
		if json.Unmarshal([]byte(raw), &records) == nil {
			return records, nil
		}
		_ = s.cache.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Progress cache read failed")
	}

	records, err := s.progress.ListByStudent(ctx, id.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	if raw, err := json.Marshal(records); err == nil {
		if err := s.cache.Set(ctx, key, raw, progressCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Progress cache write failed")
		}
	}
	return records, nil
}

// Upsert records or updates one progress record for the caller.
func (s *ProgressService) Upsert(ctx context.Context, id *model.Identity, req *model.UpsertProgressRequest) (*model.ProgressRecord, error) {
	record := &model.ProgressRecord{
		StudentID: id.SubjectID,
		CourseID:  req.CourseID,
		ProjectID: req.ProjectID,
		QuizScore: req.QuizScore,
	}
	if err := s.progress.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	s.invalidate(ctx, id.SubjectID)
	return record, nil
}

// Delete removes one of the caller's progress records.
func (s *ProgressService) Delete(ctx context.Context, id *model.Identity, projectID string) error {
	n, err := s.progress.Delete(ctx, id.SubjectID, projectID)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	if n == 0 {
		return ErrProgressNotFound
	}
	s.invalidate(ctx, id.SubjectID)
	return nil
}

func (s *ProgressService) invalidate(ctx context.Context, studentID int) {
	if err := s.cache.Del(ctx, config.CacheKey.StudentProgressKey(studentID)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Progress cache invalidation failed")
	}
}
