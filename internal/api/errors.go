package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/export"
	"github.com/courseforge/courseforge-api/internal/generation"
	"github.com/courseforge/courseforge-api/internal/service/auth"
	"github.com/courseforge/courseforge-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrCourseNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Upstream provider unavailable or misbehaving
	case errors.Is(err, generation.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrProviderCallFailed),
		errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, generation.ErrParseFailed):
		return http.StatusBadGateway

	// Bad request errors
	case errors.Is(err, generation.ErrUnsupportedModel),
		errors.Is(err, domain.ErrUnknownModel),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	// Generation failures that carry an invalid request underneath
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid credentials"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCourseNotFound):
		return "Course not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Generation pipeline errors
	case errors.Is(err, generation.ErrUnsupportedModel),
		errors.Is(err, domain.ErrUnknownModel):
		return "Unsupported AI model"

	case errors.Is(err, generation.ErrProviderNotConfigured):
		return "The selected AI provider is not available"

	case errors.Is(err, generation.ErrProviderCallFailed):
		return "The AI provider request failed"

	case errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, generation.ErrParseFailed):
		return "The AI provider returned an unusable response"

	case errors.Is(err, export.ErrUnsupportedFormat):
		return "Unsupported export format"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to a status code and safe message, then
// writes the response. When defaultMsg is non-empty it overrides the
// mapped message, which lets handlers give operation-specific wording
// without exposing the underlying error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if defaultMsg != "" && message == "An unexpected error occurred" {
		message = defaultMsg
	}

	// Validation errors can safely surface their field and reason.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && status == http.StatusBadRequest {
		message = fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Reason)
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validator.v10
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
