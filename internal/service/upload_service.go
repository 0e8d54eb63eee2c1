package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/config"
	"github.com/studiva/classwork-backend/internal/model"
)

// Upload broker errors.
var (
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file too large")
	ErrInvalidTicket         = errors.New("upload ticket invalid, expired, or already used")
	ErrSubmissionNotEditable = errors.New("submission is no longer editable")
)

// allowedContentTypes is the closed allow-list for submission uploads:
// documents, archives, and common image types.
var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/zip": {},
	"text/plain":      {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// TicketClaims pin an upload ticket to one submission and one file's
// declared metadata. Changing any of it invalidates the signature.
type TicketClaims struct {
	jwt.RegisteredClaims
	SubmissionID string `json:"submission_id"`
	StudentID    int    `json:"student_id"`
	FileName     string `json:"file_name"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

// UploadService is the broker through which every submission file enters
// or leaves the system. Tickets are signed JWTs registered in Redis for
// single use; metadata rows are written only after the full ownership
// chain checks out.
type UploadService struct {
	cfg   *config.Config
	guard *GuardService
	files FileStore
	cache KeyCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewUploadService creates a new UploadService.
func NewUploadService(cfg *config.Config, guard *GuardService, files FileStore, cache KeyCache, log zerolog.Logger) *UploadService {
	return &UploadService{
		cfg:   cfg,
		guard: guard,
		files: files,
		cache: cache,
		log:   log.With().Str("component", "upload_service").Logger(),
		now:   time.Now,
	}
}

// CreateTicket issues a time-boxed, submission-scoped upload ticket. The
// owning submission must still be editable.
func (s *UploadService) CreateTicket(ctx context.Context, id *model.Identity, submissionID uuid.UUID, req *model.CreateTicketRequest) (*model.UploadTicket, error) {
	sub, _, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}
	if !sub.Editable() {
		return nil, ErrSubmissionNotEditable
	}
	if err := s.validateFileMeta(req.ContentType, req.SizeBytes); err != nil {
		return nil, err
	}

	jti := uuid.New().String()
	now := s.now()
	expiresAt := now.Add(s.cfg.TicketTTL)

	claims := TicketClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SubmissionID: sub.ID.String(),
		StudentID:    id.SubjectID,
		FileName:     req.FileName,
		ContentType:  req.ContentType,
		SizeBytes:    req.SizeBytes,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.TicketSecret))
	if err != nil {
		return nil, fmt.Errorf("sign ticket: %w", err)
	}

	// Register for single use; finalize consumes this entry with GETDEL.
	if err := s.cache.SetEx(ctx, config.CacheKey.UploadTicketKey(jti), sub.ID.String(), s.cfg.TicketTTL).Err(); err != nil {
		return nil, fmt.Errorf("register ticket: %w", err)
	}

	return &model.UploadTicket{
		Ticket:       signed,
		SubmissionID: sub.ID,
		FileName:     req.FileName,
		ExpiresAt:    expiresAt,
	}, nil
}

// Finalize redeems a ticket after the file bytes are stored and records
// the metadata row. A ticket works exactly once and only for the
// submission it was issued for.
func (s *UploadService) Finalize(ctx context.Context, id *model.Identity, submissionID uuid.UUID, ticket, confirmedPath string) (*model.SubmissionFile, error) {
	claims := &TicketClaims{}
	_, err := jwt.ParseWithClaims(ticket, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.TicketSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidTicket
	}
	if claims.StudentID != id.SubjectID {
		return nil, ErrAccessDenied
	}
	if claims.SubmissionID != submissionID.String() {
		return nil, ErrInvalidTicket
	}

	// Consume the registry entry — replay gets redis.Nil here.
	registered, err := s.cache.GetDel(ctx, config.CacheKey.UploadTicketKey(claims.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidTicket
		}
		return nil, fmt.Errorf("consume ticket: %w", err)
	}
	if registered != claims.SubmissionID {
		return nil, ErrInvalidTicket
	}

	sub, _, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}
	if !sub.Editable() {
		return nil, ErrSubmissionNotEditable
	}

	f := &model.SubmissionFile{
		SubmissionID: sub.ID,
		FileName:     claims.FileName,
		StoragePath:  confirmedPath,
		SizeBytes:    claims.SizeBytes,
		ContentType:  claims.ContentType,
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	s.log.Info().
		Str("submission_id", sub.ID.String()).
		Str("file_name", f.FileName).
		Int64("size_bytes", f.SizeBytes).
		Msg("Upload finalized")
	return f, nil
}

// AddFile records metadata for an already-stored file directly, through
// the same guard and validation path as ticketed uploads.
func (s *UploadService) AddFile(ctx context.Context, id *model.Identity, submissionID uuid.UUID, req *model.AddFileRequest) (*model.SubmissionFile, error) {
	sub, _, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}
	if !sub.Editable() {
		return nil, ErrSubmissionNotEditable
	}
	if err := s.validateFileMeta(req.ContentType, req.SizeBytes); err != nil {
		return nil, err
	}

	f := &model.SubmissionFile{
		SubmissionID: sub.ID,
		FileName:     req.FileName,
		StoragePath:  req.StoragePath,
		SizeBytes:    req.SizeBytes,
		ContentType:  req.ContentType,
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return f, nil
}

// ListFiles returns the files attached to one of the caller's submissions.
func (s *UploadService) ListFiles(ctx context.Context, id *model.Identity, submissionID uuid.UUID) ([]model.SubmissionFile, error) {
	sub, _, err := s.guard.AuthorizeSubmission(ctx, id, submissionID)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListBySubmission(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Delete removes one file record after re-walking the full ownership
// chain. It never touches the parent submission's status or attempts.
func (s *UploadService) Delete(ctx context.Context, id *model.Identity, fileID uuid.UUID) error {
	f, sub, err := s.guard.AuthorizeFile(ctx, id, fileID)
	if err != nil {
		return err
	}
	if !sub.Editable() {
		return ErrSubmissionNotEditable
	}
	if err := s.files.Delete(ctx, f.ID); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}

func (s *UploadService) validateFileMeta(contentType string, sizeBytes int64) error {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	if sizeBytes > s.cfg.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, sizeBytes, s.cfg.MaxUploadBytes)
	}
	return nil
}
