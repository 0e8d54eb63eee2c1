package service

import (
	"context"
	"fmt"

	"github.com/studiva/classwork-backend/internal/model"
)

// StudentService serves the caller's own profile. The identity resolved by
// the token authority is the only record selector.
type StudentService struct {
	students   StudentStore
	classrooms ClassroomStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore, classrooms ClassroomStore) *StudentService {
	return &StudentService{students: students, classrooms: classrooms}
}

// GetProfile returns the caller's own student record with classroom name.
func (s *StudentService) GetProfile(ctx context.Context, id *model.Identity) (*model.ProfileResponse, error) {
	st, err := s.students.GetByID(ctx, id.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}

	cl, err := s.classrooms.GetByID(ctx, st.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("get classroom: %w", err)
	}

	return &model.ProfileResponse{
		Student:   *st,
		Classroom: cl.Name,
	}, nil
}
