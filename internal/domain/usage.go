package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Usage actions recorded against a user's account.
const (
	UsageActionGenerate = "course_generate"
	UsageActionExport   = "course_export"
)

// Usage validation errors.
var (
	ErrEmptyUsageAction = errors.New("usage action cannot be empty")
)

// UsageRecord captures one billable or rate-limited action performed by
// a user, such as generating or exporting a course.
type UsageRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	CourseID       uuid.UUID `json:"course_id,omitempty"`
	Action         string    `json:"action"`
	Model          AIModel   `json:"model,omitempty"`
	DurationMillis int64     `json:"duration_millis"`
	Success        bool      `json:"success"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUsageRecord creates a usage record with a fresh ID and the current
// UTC timestamp. Records start out successful; callers mark failures
// explicitly.
func NewUsageRecord(userID uuid.UUID, action string) *UsageRecord {
	return &UsageRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Success:   true,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks that the record is well formed before persistence.
func (r *UsageRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrInvalidID
	}
	if r.Action == "" {
		return ErrEmptyUsageAction
	}
	return nil
}
