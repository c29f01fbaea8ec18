package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/export"
	"github.com/courseforge/courseforge-api/internal/generation"
	"github.com/courseforge/courseforge-api/internal/platform/logger"
	"github.com/courseforge/courseforge-api/internal/store"
)

// CourseService provides course-related operations: generation,
// retrieval, mutation, and export. All operations are scoped to the
// requesting user.
type CourseService interface {
	// GenerateCourse runs the generation pipeline for the user's request
	// and persists the resulting course along with a usage record.
	GenerateCourse(ctx context.Context, userID uuid.UUID, req domain.GenerationRequest) (*domain.Course, error)

	// GetCourse retrieves one of the user's courses by ID.
	GetCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error)

	// ListCourses returns a page of the user's courses and the total count.
	ListCourses(ctx context.Context, userID uuid.UUID, params store.CourseListParams) ([]*domain.Course, int, error)

	// UpdateCourse replaces the mutable fields of one of the user's courses.
	UpdateCourse(ctx context.Context, userID uuid.UUID, course *domain.Course) (*domain.Course, error)

	// DeleteCourse removes one of the user's courses.
	DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error

	// ExportCourse renders one of the user's courses in the given format.
	// Returns the rendered bytes and the response content type.
	ExportCourse(ctx context.Context, userID, courseID uuid.UUID, format export.Format) ([]byte, string, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	generator   generation.CourseGenerator
	courseStore store.CourseStore
	usageStore  store.UsageStore
	db          *sql.DB
	logger      *slog.Logger
	timeFunc    func() time.Time
}

// NewCourseService creates a new CourseService.
// It returns an error if any of the required dependencies are nil.
func NewCourseService(
	generator generation.CourseGenerator,
	courseStore store.CourseStore,
	usageStore store.UsageStore,
	db *sql.DB,
	logger *slog.Logger,
) (CourseService, error) {
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if courseStore == nil {
		return nil, domain.NewValidationError("courseStore", "cannot be nil", domain.ErrValidation)
	}
	if usageStore == nil {
		return nil, domain.NewValidationError("usageStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &courseServiceImpl{
		generator:   generator,
		courseStore: courseStore,
		usageStore:  usageStore,
		db:          db,
		logger:      logger.With(slog.String("component", "course_service")),
		timeFunc:    time.Now,
	}, nil
}

// GenerateCourse implements CourseService.GenerateCourse. The course and
// its usage record are written in a single transaction so a generation
// is never billed without being saved, and vice versa.
func (s *courseServiceImpl) GenerateCourse(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Info("starting course generation",
		slog.String("user_id", userID.String()),
		slog.String("model", string(req.Model)),
		slog.String("title", req.Title))

	started := s.timeFunc()

	course, err := s.generator.GenerateCourse(ctx, req)
	if err != nil {
		log.Error("course generation failed",
			slog.String("user_id", userID.String()),
			slog.String("model", string(req.Model)),
			slog.String("error", err.Error()))

		// Failed attempts still count against usage. Best effort: a
		// failed write here must not mask the generation error.
		failed := domain.NewUsageRecord(userID, domain.UsageActionGenerate)
		failed.Model = req.Model
		failed.DurationMillis = s.timeFunc().Sub(started).Milliseconds()
		failed.Success = false
		failed.ErrorMessage = err.Error()
		if usageErr := s.usageStore.Create(ctx, failed); usageErr != nil {
			log.Warn("failed to record failed generation usage",
				slog.String("user_id", userID.String()),
				slog.String("error", usageErr.Error()))
		}

		return nil, err
	}

	course.UserID = userID

	record := domain.NewUsageRecord(userID, domain.UsageActionGenerate)
	record.CourseID = course.ID
	record.Model = req.Model
	record.DurationMillis = s.timeFunc().Sub(started).Milliseconds()

	err = store.RunInTransaction(ctx, s.db, log, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.courseStore.WithTx(tx).Create(ctx, course); err != nil {
			return NewCourseServiceError("generate_course", "failed to save course", err)
		}
		if err := s.usageStore.WithTx(tx).Create(ctx, record); err != nil {
			return NewCourseServiceError("generate_course", "failed to save usage record", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to persist generated course",
			slog.String("user_id", userID.String()),
			slog.String("course_id", course.ID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("course generated",
		slog.String("user_id", userID.String()),
		slog.String("course_id", course.ID.String()),
		slog.Int("module_count", len(course.Modules)),
		slog.Int64("duration_ms", record.DurationMillis))

	return course, nil
}

// GetCourse implements CourseService.GetCourse
func (s *courseServiceImpl) GetCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	course, err := s.courseStore.GetByID(ctx, userID, courseID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, NewCourseServiceError("get_course", "course not found", store.ErrCourseNotFound)
		}
		log.Error("failed to retrieve course",
			slog.String("course_id", courseID.String()),
			slog.String("error", err.Error()))
		return nil, NewCourseServiceError("get_course", "failed to retrieve course", err)
	}

	return course, nil
}

// ListCourses implements CourseService.ListCourses
func (s *courseServiceImpl) ListCourses(
	ctx context.Context,
	userID uuid.UUID,
	params store.CourseListParams,
) ([]*domain.Course, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	courses, total, err := s.courseStore.List(ctx, userID, params)
	if err != nil {
		log.Error("failed to list courses",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, 0, NewCourseServiceError("list_courses", "failed to list courses", err)
	}

	return courses, total, nil
}

// UpdateCourse implements CourseService.UpdateCourse
func (s *courseServiceImpl) UpdateCourse(
	ctx context.Context,
	userID uuid.UUID,
	course *domain.Course,
) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.courseStore.Update(ctx, userID, course); err != nil {
		if store.IsNotFound(err) {
			return nil, NewCourseServiceError("update_course", "course not found", store.ErrCourseNotFound)
		}
		log.Error("failed to update course",
			slog.String("course_id", course.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewCourseServiceError("update_course", "failed to update course", err)
	}

	return course, nil
}

// DeleteCourse implements CourseService.DeleteCourse
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.courseStore.Delete(ctx, userID, courseID); err != nil {
		if store.IsNotFound(err) {
			return NewCourseServiceError("delete_course", "course not found", store.ErrCourseNotFound)
		}
		log.Error("failed to delete course",
			slog.String("course_id", courseID.String()),
			slog.String("error", err.Error()))
		return NewCourseServiceError("delete_course", "failed to delete course", err)
	}

	log.Info("course deleted",
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()))

	return nil
}

// ExportCourse implements CourseService.ExportCourse. Exports are
// recorded in the usage log; a failed usage write is logged but does
// not block the export.
func (s *courseServiceImpl) ExportCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
	format export.Format,
) ([]byte, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	course, err := s.GetCourse(ctx, userID, courseID)
	if err != nil {
		return nil, "", err
	}

	data, err := export.Course(course, format)
	if err != nil {
		return nil, "", NewCourseServiceError("export_course", "failed to render course", err)
	}

	record := domain.NewUsageRecord(userID, domain.UsageActionExport)
	record.CourseID = courseID
	if err := s.usageStore.Create(ctx, record); err != nil {
		log.Warn("failed to record export usage",
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()),
			slog.String("error", err.Error()))
	}

	return data, format.ContentType(), nil
}
