package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GenerateCourseRequest defines the payload for the course generation
// endpoint. It mirrors domain.GenerationRequest plus wire validation.
type GenerateCourseRequest struct {
	Title              string   `json:"title"               validate:"required,min=1,max=200"`
	Description        string   `json:"description"         validate:"max=2000"`
	Level              string   `json:"level"               validate:"required,oneof=beginner intermediate expert"`
	Language           string   `json:"language"            validate:"required,min=2,max=50"`
	Model              string   `json:"ai_model"            validate:"required"`
	IncludeQuizzes     bool     `json:"include_quizzes"`
	IncludeAssignments bool     `json:"include_assignments"`
	CustomInstructions string   `json:"custom_instructions" validate:"max=2000"`
	Tags               []string `json:"tags"                validate:"max=20,dive,min=1,max=50"`
}

// ToDomain converts the wire request into a domain generation request.
func (r GenerateCourseRequest) ToDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		Title:              r.Title,
		Description:        r.Description,
		Level:              domain.CourseLevel(r.Level),
		Language:           r.Language,
		Model:              domain.AIModel(r.Model),
		IncludeQuizzes:     r.IncludeQuizzes,
		IncludeAssignments: r.IncludeAssignments,
		CustomInstructions: r.CustomInstructions,
		Tags:               r.Tags,
	}
}

// UpdateCourseRequest defines the payload for the course update endpoint.
// Pointer fields distinguish "leave unchanged" from "set to zero value".
type UpdateCourseRequest struct {
	Title            *string          `json:"title,omitempty"             validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description,omitempty"       validate:"omitempty,max=2000"`
	Status           *string          `json:"status,omitempty"            validate:"omitempty,oneof=draft published archived"`
	Tags             *[]string        `json:"tags,omitempty"              validate:"omitempty,max=20,dive,min=1,max=50"`
	LearningOutcomes *[]string        `json:"learning_outcomes,omitempty" validate:"omitempty,max=50"`
	Modules          *[]domain.Module `json:"modules,omitempty"`
}

// CourseListResponse defines the paginated response for course listings.
type CourseListResponse struct {
	Courses []*domain.Course `json:"courses"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// UsageRecordResponse is the wire representation of a usage record.
type UsageRecordResponse struct {
	ID             uuid.UUID `json:"id"`
	CourseID       uuid.UUID `json:"course_id,omitempty"`
	Action         string    `json:"action"`
	Model          string    `json:"model,omitempty"`
	DurationMillis int64     `json:"duration_millis"`
	Success        bool      `json:"success"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUsageRecordResponse converts a domain usage record for the wire.
func NewUsageRecordResponse(record *domain.UsageRecord) UsageRecordResponse {
	return UsageRecordResponse{
		ID:             record.ID,
		CourseID:       record.CourseID,
		Action:         record.Action,
		Model:          string(record.Model),
		DurationMillis: record.DurationMillis,
		Success:        record.Success,
		CreatedAt:      record.CreatedAt,
	}
}

// UserResponse is the wire representation of a user. The password hash
// never appears here.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a domain user for the wire.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
