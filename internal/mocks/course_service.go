package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/export"
	"github.com/courseforge/courseforge-api/internal/store"
)

// MockCourseService implements service.CourseService for testing.
type MockCourseService struct {
	GenerateCourseFn func(ctx context.Context, userID uuid.UUID, req domain.GenerationRequest) (*domain.Course, error)
	GetCourseFn      func(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error)
	ListCoursesFn    func(ctx context.Context, userID uuid.UUID, params store.CourseListParams) ([]*domain.Course, int, error)
	UpdateCourseFn   func(ctx context.Context, userID uuid.UUID, course *domain.Course) (*domain.Course, error)
	DeleteCourseFn   func(ctx context.Context, userID, courseID uuid.UUID) error
	ExportCourseFn   func(ctx context.Context, userID, courseID uuid.UUID, format export.Format) ([]byte, string, error)

	// Default values used when functions aren't explicitly defined
	Course  *domain.Course
	Courses []*domain.Course
	Total   int
	Err     error
}

// GenerateCourse implements the service.CourseService interface
func (m *MockCourseService) GenerateCourse(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
) (*domain.Course, error) {
	if m.GenerateCourseFn != nil {
		return m.GenerateCourseFn(ctx, userID, req)
	}
	return m.Course, m.Err
}

// GetCourse implements the service.CourseService interface
func (m *MockCourseService) GetCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error) {
	if m.GetCourseFn != nil {
		return m.GetCourseFn(ctx, userID, courseID)
	}
	return m.Course, m.Err
}

// ListCourses implements the service.CourseService interface
func (m *MockCourseService) ListCourses(
	ctx context.Context,
	userID uuid.UUID,
	params store.CourseListParams,
) ([]*domain.Course, int, error) {
	if m.ListCoursesFn != nil {
		return m.ListCoursesFn(ctx, userID, params)
	}
	return m.Courses, m.Total, m.Err
}

// UpdateCourse implements the service.CourseService interface
func (m *MockCourseService) UpdateCourse(
	ctx context.Context,
	userID uuid.UUID,
	course *domain.Course,
) (*domain.Course, error) {
	if m.UpdateCourseFn != nil {
		return m.UpdateCourseFn(ctx, userID, course)
	}
	return m.Course, m.Err
}

// DeleteCourse implements the service.CourseService interface
func (m *MockCourseService) DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	if m.DeleteCourseFn != nil {
		return m.DeleteCourseFn(ctx, userID, courseID)
	}
	return m.Err
}

// ExportCourse implements the service.CourseService interface
func (m *MockCourseService) ExportCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
	format export.Format,
) ([]byte, string, error) {
	if m.ExportCourseFn != nil {
		return m.ExportCourseFn(ctx, userID, courseID, format)
	}
	return []byte("exported"), format.ContentType(), m.Err
}
