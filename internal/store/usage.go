package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// UsageStore defines persistence operations for usage records.
type UsageStore interface {
	// Create persists a usage record.
	Create(ctx context.Context, record *domain.UsageRecord) error

	// ListByUser returns the user's usage records, newest first, capped
	// at limit. A limit below 1 uses a default page size.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageRecord, error)

	// CountSince returns how many records with the given action the user
	// has accrued in the last windowSeconds seconds. Used to enforce
	// generation rate limits across restarts.
	CountSince(ctx context.Context, userID uuid.UUID, action string, windowSeconds int) (int, error)

	// WithTx returns a UsageStore that runs its operations on the given
	// transaction.
	WithTx(tx DBTX) UsageStore
}
