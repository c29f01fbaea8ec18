package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/store"
)

// MustInsertUser inserts a user row for tests and returns its ID.
// Passwords are hashed at bcrypt.MinCost to keep tests fast.
func MustInsertUser(ctx context.Context, t *testing.T, tx store.DBTX, email string) uuid.UUID {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("test-password-123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	id := uuid.New()
	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, name, role, hashed_password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, email, "Test User", domain.RoleFree, string(hashed), now, now,
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}

	return id
}

// MustInsertCourse inserts a minimal course row owned by userID and
// returns its ID.
func MustInsertCourse(ctx context.Context, t *testing.T, tx store.DBTX, userID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO courses (
			id, user_id, title, description, level, language,
			modules, learning_outcomes, status, tags,
			estimated_duration, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, userID, title, "", domain.LevelBeginner, "English",
		[]byte("[]"), []byte("[]"), domain.CourseStatusDraft, []byte("[]"),
		0, now, now,
	)
	if err != nil {
		t.Fatalf("Failed to insert test course: %v", err)
	}

	return id
}
