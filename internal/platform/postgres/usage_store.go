package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/platform/logger"
	"github.com/courseforge/courseforge-api/internal/store"
)

const defaultUsagePageSize = 50

// PostgresUsageStore implements the store.UsageStore interface using a
// PostgreSQL database as the storage backend.
type PostgresUsageStore struct {
	db store.DBTX
}

// Ensure PostgresUsageStore implements store.UsageStore
var _ store.UsageStore = (*PostgresUsageStore)(nil)

// NewPostgresUsageStore creates a new PostgreSQL implementation of the
// UsageStore interface.
func NewPostgresUsageStore(db store.DBTX) *PostgresUsageStore {
	return &PostgresUsageStore{
		db: db,
	}
}

// WithTx returns a UsageStore bound to the given transaction.
func (s *PostgresUsageStore) WithTx(tx store.DBTX) store.UsageStore {
	return &PostgresUsageStore{
		db: tx,
	}
}

// Create implements store.UsageStore.Create
func (s *PostgresUsageStore) Create(ctx context.Context, record *domain.UsageRecord) error {
	log := logger.FromContext(ctx)

	if err := record.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO usage_records (id, user_id, course_id, action, model, duration_millis, success, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var courseID interface{}
	if record.CourseID != uuid.Nil {
		courseID = record.CourseID
	}

	var errorMessage interface{}
	if record.ErrorMessage != "" {
		errorMessage = record.ErrorMessage
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		courseID,
		record.Action,
		record.Model,
		record.DurationMillis,
		record.Success,
		errorMessage,
		record.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create usage record",
			"user_id", record.UserID,
			"action", record.Action,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.UsageStore.ListByUser
func (s *PostgresUsageStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageRecord, error) {
	if limit < 1 {
		limit = defaultUsagePageSize
	}

	query := `
		SELECT id, user_id, course_id, action, model, duration_millis, success, error_message, created_at
		FROM usage_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.UsageRecord{}
	for rows.Next() {
		var record domain.UsageRecord
		var courseID uuid.NullUUID
		var model sql.NullString
		var errorMessage sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&courseID,
			&record.Action,
			&model,
			&record.DurationMillis,
			&record.Success,
			&errorMessage,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}

		if courseID.Valid {
			record.CourseID = courseID.UUID
		}
		record.Model = domain.AIModel(model.String)
		record.ErrorMessage = errorMessage.String

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage rows: %w", err)
	}

	return records, nil
}

// CountSince implements store.UsageStore.CountSince
func (s *PostgresUsageStore) CountSince(ctx context.Context, userID uuid.UUID, action string, windowSeconds int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM usage_records
		WHERE user_id = $1 AND action = $2 AND created_at >= $3
	`

	cutoff := time.Now().UTC().Add(-time.Duration(windowSeconds) * time.Second)

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, action, cutoff).Scan(&count); err != nil {
		return 0, MapError(err)
	}

	return count, nil
}
