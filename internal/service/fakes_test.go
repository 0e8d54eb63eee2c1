package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/studiva/classwork-backend/internal/model"
)

// In-memory fakes for the store interfaces. They mimic the repository
// semantics the services rely on: pgx.ErrNoRows for missing rows and for
// guarded transitions that match zero rows.

type fakeSessionStore struct {
	sessions map[string]model.Session
	calls    int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]model.Session)}
}

func (f *fakeSessionStore) add(token string, id model.Identity, expiresAt time.Time) {
	f.sessions[token] = model.Session{
		Token:     token,
		SubjectID: id.SubjectID,
		Role:      id.Role,
		ExpiresAt: expiresAt,
	}
}

func (f *fakeSessionStore) ResolveToken(ctx context.Context, token string) (*model.Identity, time.Time, error) {
	f.calls++
	s, ok := f.sessions[token]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return nil, time.Time{}, pgx.ErrNoRows
	}
	classroomID := f.classroomFor(s.SubjectID)
	return &model.Identity{SubjectID: s.SubjectID, ClassroomID: classroomID, Role: s.Role}, s.ExpiresAt, nil
}

// classroomFor keeps the fake simple: subject n lives in classroom n.
func (f *fakeSessionStore) classroomFor(subjectID int) int { return subjectID }

type fakeAssignmentStore struct {
	assignments map[uuid.UUID]model.Assignment
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: make(map[uuid.UUID]model.Assignment)}
}

func (f *fakeAssignmentStore) add(a model.Assignment) model.Assignment {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.assignments[a.ID] = a
	return a
}

func (f *fakeAssignmentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := a
	return &cp, nil
}

func (f *fakeAssignmentStore) ListByClassroom(ctx context.Context, classroomID int, status *model.AssignmentStatus) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.ClassroomID != classroomID {
			continue
		}
		if status != nil {
			if a.Status != *status {
				continue
			}
		} else if a.Status == model.AssignmentStatusArchived || a.Status == model.AssignmentStatusDraft {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeSubmissionStore struct {
	submissions map[uuid.UUID]model.Submission
	assignments *fakeAssignmentStore

	// hideCurrentOnce makes the next GetCurrent miss, to rehearse the
	// read-then-insert race on draft creation.
	hideCurrentOnce bool
}

func newFakeSubmissionStore(assignments *fakeAssignmentStore) *fakeSubmissionStore {
	return &fakeSubmissionStore{
		submissions: make(map[uuid.UUID]model.Submission),
		assignments: assignments,
	}
}

func (f *fakeSubmissionStore) add(s model.Submission) model.Submission {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AttemptNumber == 0 {
		s.AttemptNumber = 1
	}
	f.submissions[s.ID] = s
	return s
}

func (f *fakeSubmissionStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := s
	return &cp, nil
}

func (f *fakeSubmissionStore) GetCurrent(ctx context.Context, assignmentID uuid.UUID, studentID int) (*model.Submission, error) {
	if f.hideCurrentOnce {
		f.hideCurrentOnce = false
		return nil, pgx.ErrNoRows
	}
	var cur *model.Submission
	for _, s := range f.submissions {
		if s.AssignmentID != assignmentID || s.StudentID != studentID {
			continue
		}
		if cur == nil || s.AttemptNumber > cur.AttemptNumber {
			cp := s
			cur = &cp
		}
	}
	if cur == nil {
		return nil, pgx.ErrNoRows
	}
	return cur, nil
}

func (f *fakeSubmissionStore) ListCurrentByStudent(ctx context.Context, studentID int) ([]model.Submission, error) {
	byAssignment := make(map[uuid.UUID]model.Submission)
	for _, s := range f.submissions {
		if s.StudentID != studentID {
			continue
		}
		if cur, ok := byAssignment[s.AssignmentID]; !ok || s.AttemptNumber > cur.AttemptNumber {
			byAssignment[s.AssignmentID] = s
		}
	}
	out := make([]model.Submission, 0, len(byAssignment))
	for _, s := range byAssignment {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubmissionStore) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) CreateDraft(ctx context.Context, s *model.Submission) error {
	for _, existing := range f.submissions {
		if existing.AssignmentID == s.AssignmentID && existing.StudentID == s.StudentID &&
			existing.Status == model.SubmissionStatusDraft {
			// Partial unique index: the concurrent create lost.
			return pgx.ErrNoRows
		}
	}
	s.ID = uuid.New()
	s.Status = model.SubmissionStatusDraft
	f.submissions[s.ID] = *s
	return nil
}

func (f *fakeSubmissionStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok || !s.Editable() {
		return nil, pgx.ErrNoRows
	}
	s.Content = content
	f.submissions[id] = s
	cp := s
	return &cp, nil
}

func (f *fakeSubmissionStore) Submit(ctx context.Context, id uuid.UUID, isLate bool) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok || s.Status != model.SubmissionStatusDraft {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	s.Status = model.SubmissionStatusSubmitted
	s.SubmittedAt = &now
	s.IsLate = isLate
	f.submissions[id] = s
	cp := s
	return &cp, nil
}

func (f *fakeSubmissionStore) Resubmit(ctx context.Context, id uuid.UUID, isLate bool) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok || s.Status != model.SubmissionStatusRevisionRequested {
		return nil, pgx.ErrNoRows
	}
	a, ok := f.assignments.assignments[s.AssignmentID]
	if !ok || !a.HasAttemptsLeft(s.AttemptNumber) {
		// The SQL statement re-checks the cap; zero rows match.
		return nil, pgx.ErrNoRows
	}
	for _, other := range f.submissions {
		// Only the latest attempt resubmits; a newer row means a
		// concurrent resubmission already won.
		if other.AssignmentID == s.AssignmentID && other.StudentID == s.StudentID &&
			other.AttemptNumber > s.AttemptNumber {
			return nil, pgx.ErrNoRows
		}
	}
	now := time.Now()
	next := model.Submission{
		ID:            uuid.New(),
		AssignmentID:  s.AssignmentID,
		StudentID:     s.StudentID,
		Status:        model.SubmissionStatusSubmitted,
		AttemptNumber: s.AttemptNumber + 1,
		Content:       s.Content,
		SubmittedAt:   &now,
		IsLate:        isLate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.submissions[next.ID] = next
	cp := next
	return &cp, nil
}

func (f *fakeSubmissionStore) Grade(ctx context.Context, id uuid.UUID, grade float64, feedback string) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok || s.Status != model.SubmissionStatusSubmitted {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	s.Status = model.SubmissionStatusGraded
	s.Grade = &grade
	s.Feedback = &feedback
	s.GradedAt = &now
	f.submissions[id] = s
	cp := s
	return &cp, nil
}

func (f *fakeSubmissionStore) RequestRevision(ctx context.Context, id uuid.UUID, feedback string) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok || s.Status != model.SubmissionStatusSubmitted {
		return nil, pgx.ErrNoRows
	}
	s.Status = model.SubmissionStatusRevisionRequested
	s.Feedback = &feedback
	f.submissions[id] = s
	cp := s
	return &cp, nil
}

type fakeFileStore struct {
	files map[uuid.UUID]model.SubmissionFile
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[uuid.UUID]model.SubmissionFile)}
}

func (f *fakeFileStore) add(file model.SubmissionFile) model.SubmissionFile {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	f.files[file.ID] = file
	return file
}

func (f *fakeFileStore) GetByID(ctx context.Context, id uuid.UUID) (*model.SubmissionFile, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := file
	return &cp, nil
}

func (f *fakeFileStore) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.SubmissionFile, error) {
	var out []model.SubmissionFile
	for _, file := range f.files {
		if file.SubmissionID == submissionID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeFileStore) CountBySubmission(ctx context.Context, submissionID uuid.UUID) (int, error) {
	files, _ := f.ListBySubmission(ctx, submissionID)
	return len(files), nil
}

func (f *fakeFileStore) Create(ctx context.Context, file *model.SubmissionFile) error {
	file.ID = uuid.New()
	file.UploadedAt = time.Now()
	f.files[file.ID] = *file
	return nil
}

func (f *fakeFileStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.files, id)
	return nil
}

type fakeProgressStore struct {
	records map[string]model.ProgressRecord // key: studentID/projectID
	lists   int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[string]model.ProgressRecord)}
}

func progressKey(studentID int, projectID string) string {
	return fmt.Sprintf("%d/%s", studentID, projectID)
}

func (f *fakeProgressStore) ListByStudent(ctx context.Context, studentID int) ([]model.ProgressRecord, error) {
	f.lists++
	out := []model.ProgressRecord{}
	for _, r := range f.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) Upsert(ctx context.Context, p *model.ProgressRecord) error {
	key := progressKey(p.StudentID, p.ProjectID)
	if old, ok := f.records[key]; ok && p.QuizScore == nil {
		p.QuizScore = old.QuizScore
	}
	p.UpdatedAt = time.Now()
	f.records[key] = *p
	return nil
}

func (f *fakeProgressStore) Delete(ctx context.Context, studentID int, projectID string) (int64, error) {
	key := progressKey(studentID, projectID)
	if _, ok := f.records[key]; !ok {
		return 0, nil
	}
	delete(f.records, key)
	return 1, nil
}

// fakeCache is an in-memory KeyCache. Expirations are ignored; the tests
// drive single-use behavior through GetDel like the services do.
type fakeCache struct {
	data     map[string]string
	getCalls int
	down     bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	f.getCalls++
	if f.down {
		return redis.NewStringResult("", fmt.Errorf("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.down {
		return redis.NewStatusResult("", fmt.Errorf("connection refused"))
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return f.Set(ctx, key, value, expiration)
}

func (f *fakeCache) GetDel(ctx context.Context, key string) *redis.StringCmd {
	if f.down {
		return redis.NewStringResult("", fmt.Errorf("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(f.data, key)
	return redis.NewStringResult(v, nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
