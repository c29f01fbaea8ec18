package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/store"
)

// MockUsageStore implements store.UsageStore for testing.
type MockUsageStore struct {
	CreateFn     func(ctx context.Context, record *domain.UsageRecord) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageRecord, error)
	CountSinceFn func(ctx context.Context, userID uuid.UUID, action string, windowSeconds int) (int, error)

	// Default values used when functions aren't explicitly defined
	Records []*domain.UsageRecord
	Count   int
	Err     error
}

// Create implements the store.UsageStore interface
func (m *MockUsageStore) Create(ctx context.Context, record *domain.UsageRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, record)
	}
	return m.Err
}

// ListByUser implements the store.UsageStore interface
func (m *MockUsageStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UsageRecord, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit)
	}
	return m.Records, m.Err
}

// CountSince implements the store.UsageStore interface
func (m *MockUsageStore) CountSince(ctx context.Context, userID uuid.UUID, action string, windowSeconds int) (int, error) {
	if m.CountSinceFn != nil {
		return m.CountSinceFn(ctx, userID, action, windowSeconds)
	}
	return m.Count, m.Err
}

// WithTx implements the store.UsageStore interface
func (m *MockUsageStore) WithTx(tx store.DBTX) store.UsageStore {
	return m
}
