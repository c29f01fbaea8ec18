package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/platform/logger"
	"github.com/courseforge/courseforge-api/internal/store"
)

// sortColumns maps client-supplied sort keys to the columns they are
// allowed to order by. Sort keys are interpolated into the query text,
// so anything not in this map falls back to created_at rather than
// reaching the SQL string.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"level":      "level",
	"status":     "status",
}

const defaultSortColumn = "created_at"

// sortColumn resolves a client-supplied sort key against the allow-list.
func sortColumn(key string) string {
	if col, ok := sortColumns[key]; ok {
		return col
	}
	return defaultSortColumn
}

// sortDirection normalizes a sort order to ASC or DESC, defaulting to
// DESC so listings show newest courses first.
func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

// PostgresCourseStore implements the store.CourseStore interface using
// a PostgreSQL database as the storage backend.
type PostgresCourseStore struct {
	db store.DBTX
}

// Ensure PostgresCourseStore implements store.CourseStore
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// NewPostgresCourseStore creates a new PostgreSQL implementation of the
// CourseStore interface. The caller owns the database handle.
func NewPostgresCourseStore(db store.DBTX) *PostgresCourseStore {
	return &PostgresCourseStore{
		db: db,
	}
}

// WithTx returns a CourseStore bound to the given transaction.
func (s *PostgresCourseStore) WithTx(tx store.DBTX) store.CourseStore {
	return &PostgresCourseStore{
		db: tx,
	}
}

// courseBlobs holds the JSONB-encoded structural columns of a course row.
type courseBlobs struct {
	modules  []byte
	outcomes []byte
	tags     []byte
}

// encodeBlobs serializes the course's module tree, learning outcomes and
// tags for storage.
func encodeBlobs(course *domain.Course) (courseBlobs, error) {
	var blobs courseBlobs
	var err error

	if blobs.modules, err = json.Marshal(course.Modules); err != nil {
		return blobs, fmt.Errorf("failed to encode modules: %w", err)
	}
	if blobs.outcomes, err = json.Marshal(course.LearningOutcomes); err != nil {
		return blobs, fmt.Errorf("failed to encode learning outcomes: %w", err)
	}
	if blobs.tags, err = json.Marshal(course.Tags); err != nil {
		return blobs, fmt.Errorf("failed to encode tags: %w", err)
	}

	return blobs, nil
}

// decodeBlobs deserializes the JSONB columns back into the course.
// Nil slices are normalized to empty so serialized output never drops keys.
func decodeBlobs(course *domain.Course, blobs courseBlobs) error {
	if err := json.Unmarshal(blobs.modules, &course.Modules); err != nil {
		return fmt.Errorf("failed to decode modules: %w", err)
	}
	if err := json.Unmarshal(blobs.outcomes, &course.LearningOutcomes); err != nil {
		return fmt.Errorf("failed to decode learning outcomes: %w", err)
	}
	if err := json.Unmarshal(blobs.tags, &course.Tags); err != nil {
		return fmt.Errorf("failed to decode tags: %w", err)
	}

	if course.Modules == nil {
		course.Modules = []domain.Module{}
	}
	if course.LearningOutcomes == nil {
		course.LearningOutcomes = []string{}
	}
	if course.Tags == nil {
		course.Tags = []string{}
	}

	return nil
}

// Create implements store.CourseStore.Create
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContext(ctx)

	if err := course.Validate(); err != nil {
		return err
	}

	blobs, err := encodeBlobs(course)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO courses (
			id, user_id, title, description, level, language,
			modules, learning_outcomes, status, tags,
			estimated_duration, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = s.db.ExecContext(ctx, query,
		course.ID,
		course.UserID,
		course.Title,
		course.Description,
		course.Level,
		course.Language,
		blobs.modules,
		blobs.outcomes,
		course.Status,
		blobs.tags,
		course.EstimatedDuration,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create course",
			"course_id", course.ID,
			"user_id", course.UserID,
			"error", err)
		return MapError(err)
	}

	return nil
}

const courseColumns = `
	id, user_id, title, description, level, language,
	modules, learning_outcomes, status, tags,
	estimated_duration, created_at, updated_at
`

// scanCourse reads one course row from a scanner.
func scanCourse(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Course, error) {
	var course domain.Course
	var blobs courseBlobs

	err := row.Scan(
		&course.ID,
		&course.UserID,
		&course.Title,
		&course.Description,
		&course.Level,
		&course.Language,
		&blobs.modules,
		&blobs.outcomes,
		&course.Status,
		&blobs.tags,
		&course.EstimatedDuration,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeBlobs(&course, blobs); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetByID implements store.CourseStore.GetByID. Ownership is part of
// the predicate, so another user's course reads as not found.
func (s *PostgresCourseStore) GetByID(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE id = $1 AND user_id = $2
	`

	course, err := scanCourse(s.db.QueryRowContext(ctx, query, courseID, userID))
	if err != nil {
		if IsNotFoundError(MapError(err)) {
			return nil, fmt.Errorf("%w: %v", store.ErrCourseNotFound, err)
		}
		return nil, MapError(err)
	}

	return course, nil
}

// List implements store.CourseStore.List. Filters are combined with AND;
// the search term matches title and description case-insensitively.
func (s *PostgresCourseStore) List(ctx context.Context, userID uuid.UUID, params store.CourseListParams) ([]*domain.Course, int, error) {
	log := logger.FromContext(ctx)
	params.Normalize()

	where := []string{"user_id = $1"}
	args := []interface{}{userID}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if params.Status != "" {
		addArg("status = $%d", params.Status)
	}
	if params.Level != "" {
		addArg("level = $%d", params.Level)
	}
	if params.Language != "" {
		addArg("language = $%d", params.Language)
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM courses WHERE ` + whereClause

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count courses",
			"user_id", userID,
			"error", err)
		return nil, 0, MapError(err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, courseColumns, whereClause, sortColumn(params.SortBy), sortDirection(params.SortOrder), len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to list courses",
			"user_id", userID,
			"error", err)
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	courses := []*domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, total, nil
}

// Update implements store.CourseStore.Update
func (s *PostgresCourseStore) Update(ctx context.Context, userID uuid.UUID, course *domain.Course) error {
	log := logger.FromContext(ctx)

	if err := course.Validate(); err != nil {
		return err
	}

	blobs, err := encodeBlobs(course)
	if err != nil {
		return err
	}

	course.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE courses
		SET title = $1, description = $2, level = $3, language = $4,
			modules = $5, learning_outcomes = $6, status = $7, tags = $8,
			estimated_duration = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12
	`

	result, err := s.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.Level,
		course.Language,
		blobs.modules,
		blobs.outcomes,
		course.Status,
		blobs.tags,
		course.EstimatedDuration,
		course.UpdatedAt,
		course.ID,
		userID,
	)
	if err != nil {
		log.Error("failed to update course",
			"course_id", course.ID,
			"user_id", userID,
			"error", err)
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "course"); err != nil {
		return fmt.Errorf("%w: %v", store.ErrCourseNotFound, err)
	}

	return nil
}

// Delete implements store.CourseStore.Delete
func (s *PostgresCourseStore) Delete(ctx context.Context, userID, courseID uuid.UUID) error {
	query := `DELETE FROM courses WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, courseID, userID)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "course"); err != nil {
		return fmt.Errorf("%w: %v", store.ErrCourseNotFound, err)
	}

	return nil
}
