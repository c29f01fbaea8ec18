package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/platform/postgres"
	"github.com/courseforge/courseforge-api/internal/service"
	"github.com/courseforge/courseforge-api/internal/store"
	"github.com/courseforge/courseforge-api/internal/testutils"
)

// failingUsageStore wraps a real usage store and can be configured to
// fail on Create, to exercise transaction rollback paths.
type failingUsageStore struct {
	inner        store.UsageStore
	failOnCreate bool
}

func (s *failingUsageStore) Create(ctx context.Context, record *domain.UsageRecord) error {
	if s.failOnCreate {
		return errors.New("simulated usage record failure")
	}
	return s.inner.Create(ctx, record)
}

func (s *failingUsageStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageRecord, error) {
	return s.inner.ListByUser(ctx, userID, limit)
}

func (s *failingUsageStore) CountSince(ctx context.Context, userID uuid.UUID, action string, windowSeconds int) (int, error) {
	return s.inner.CountSince(ctx, userID, action, windowSeconds)
}

func (s *failingUsageStore) WithTx(tx store.DBTX) store.UsageStore {
	return &failingUsageStore{
		inner:        s.inner.WithTx(tx),
		failOnCreate: s.failOnCreate,
	}
}

func generatedCourse(t *testing.T) *domain.Course {
	t.Helper()

	course, err := domain.NewCourse(uuid.New(), "Generated Course", domain.LevelBeginner, "English")
	require.NoError(t, err)
	course.Modules = []domain.Module{
		{
			ID:    uuid.New(),
			Title: "Module 1",
			Order: 1,
		},
	}
	return course
}

// TestCourseService_GenerateCourse_Atomicity verifies that the course
// and its usage record are written in a single transaction.
func TestCourseService_GenerateCourse_Atomicity(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db := testutils.GetTestDBWithT(t)
	ctx := context.Background()
	logger := slog.Default()

	userID := testutils.MustInsertUser(ctx, t, db, "course-tx-test@example.com")
	t.Cleanup(func() {
		// Cascades to courses and usage_records.
		if _, err := db.ExecContext(context.Background(), "DELETE FROM users WHERE id = $1", userID); err != nil {
			t.Logf("Failed to clean up test user: %v", err)
		}
	})

	courseStore := postgres.NewPostgresCourseStore(db)
	usageStore := postgres.NewPostgresUsageStore(db)

	req := domain.GenerationRequest{
		Title:    "Generated Course",
		Level:    domain.LevelBeginner,
		Language: "English",
		Model:    domain.ModelGPT4,
	}

	countRows := func(t *testing.T, query string) int {
		t.Helper()
		var n int
		require.NoError(t, db.QueryRowContext(ctx, query, userID).Scan(&n))
		return n
	}

	t.Run("Rollback_On_Usage_Record_Failure", func(t *testing.T) {
		failingUsage := &failingUsageStore{inner: usageStore, failOnCreate: true}

		svc, err := service.NewCourseService(
			&stubGenerator{course: generatedCourse(t)},
			courseStore,
			failingUsage,
			db,
			logger,
		)
		require.NoError(t, err)

		_, genErr := svc.GenerateCourse(ctx, userID, req)
		assert.Error(t, genErr)
		assert.Contains(t, genErr.Error(), "simulated usage record failure")

		assert.Equal(t, 0, countRows(t, "SELECT COUNT(*) FROM courses WHERE user_id = $1"),
			"No course should exist after rollback")
		assert.Equal(t, 0, countRows(t, "SELECT COUNT(*) FROM usage_records WHERE user_id = $1"),
			"No usage record should exist after rollback")
	})

	t.Run("Commit_Persists_Course_And_Usage", func(t *testing.T) {
		svc, err := service.NewCourseService(
			&stubGenerator{course: generatedCourse(t)},
			courseStore,
			usageStore,
			db,
			logger,
		)
		require.NoError(t, err)

		course, genErr := svc.GenerateCourse(ctx, userID, req)
		require.NoError(t, genErr)
		require.NotNil(t, course)
		assert.Equal(t, userID, course.UserID)

		assert.Equal(t, 1, countRows(t, "SELECT COUNT(*) FROM courses WHERE user_id = $1"))
		assert.Equal(t, 1, countRows(t, "SELECT COUNT(*) FROM usage_records WHERE user_id = $1"))

		records, err := usageStore.ListByUser(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.UsageActionGenerate, records[0].Action)
		assert.Equal(t, course.ID, records[0].CourseID)
	})
}
