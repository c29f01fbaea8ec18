package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// CourseListParams narrows and orders course listings. All filter
// fields are optional; zero values mean "no filter". Page is 1-based.
type CourseListParams struct {
	Search    string
	Status    domain.CourseStatus
	Level     domain.CourseLevel
	Language  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Normalize clamps pagination to sane bounds so implementations never
// see a zero limit or negative offset.
func (p *CourseListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset returns the row offset implied by Page and Limit.
func (p CourseListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CourseStore defines persistence operations for courses. All reads and
// writes are scoped to the owning user: a course belonging to another
// user is indistinguishable from a missing one.
type CourseStore interface {
	// Create persists a new course with its full module tree.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course owned by userID. Returns
	// ErrCourseNotFound if no matching course exists.
	GetByID(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error)

	// List returns a page of the user's courses matching params, plus the
	// total count across all pages.
	List(ctx context.Context, userID uuid.UUID, params CourseListParams) ([]*domain.Course, int, error)

	// Update replaces the course's mutable fields and module tree.
	// Returns ErrCourseNotFound if the course does not exist or belongs
	// to another user.
	Update(ctx context.Context, userID uuid.UUID, course *domain.Course) error

	// Delete removes a course owned by userID. Returns ErrCourseNotFound
	// if no matching course exists.
	Delete(ctx context.Context, userID, courseID uuid.UUID) error

	// WithTx returns a CourseStore that runs its operations on the given
	// transaction.
	WithTx(tx DBTX) CourseStore
}
