package store

import "errors"

// Sentinel errors returned by store implementations. Callers use
// errors.Is to branch on these without depending on driver details.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrEmailExists is returned when inserting or updating a user
	// would violate the unique email constraint.
	ErrEmailExists = errors.New("email already exists")

	// ErrUpdateConflict is returned when an update affects no rows,
	// typically because the row changed or was removed concurrently.
	ErrUpdateConflict = errors.New("update conflict")

	// ErrDuplicate is returned when an insert or update violates a
	// unique constraint.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrInvalidEntity is returned when the database rejects an entity
	// for violating a constraint other than uniqueness.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCourseNotFound is returned when the requested course does not
	// exist or does not belong to the requesting user.
	ErrCourseNotFound = errors.New("course not found")

	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// IsNotFound reports whether err represents any of the not-found
// sentinels, so handlers can map them to a single 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
