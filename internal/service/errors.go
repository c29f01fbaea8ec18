package service

import "fmt"

// CourseServiceError is a custom error type for course service errors.
// It carries the failed operation for logging while wrapping the
// underlying cause for errors.Is checks.
type CourseServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CourseServiceError.
func (e *CourseServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("course service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("course service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CourseServiceError) Unwrap() error {
	return e.Err
}

// NewCourseServiceError creates a new CourseServiceError.
func NewCourseServiceError(operation, message string, err error) *CourseServiceError {
	return &CourseServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
