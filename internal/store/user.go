package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// UserStore defines persistence operations for users. Implementations
// are responsible for hashing passwords before they reach the database;
// the HashedPassword field is never returned to API callers.
type UserStore interface {
	// Create persists a new user. The user's plaintext Password field is
	// hashed before storage and cleared on return. Returns ErrEmailExists
	// if the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by its unique ID. Returns ErrUserNotFound
	// if no user exists with that ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if no
	// user exists with that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies the user's mutable fields (email, name, role). If a
	// plaintext Password is set it is re-hashed. Returns ErrUserNotFound
	// when the user does not exist and ErrEmailExists on email conflicts.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Returns ErrUserNotFound if no user
	// exists with that ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore that runs its operations on the given
	// transaction.
	WithTx(tx DBTX) UserStore
}
