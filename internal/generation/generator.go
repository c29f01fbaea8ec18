package generation

import (
	"context"

	"github.com/courseforge/courseforge-api/internal/domain"
)

// CourseGenerator defines the interface for generating courses from a
// generation request. This interface serves as a boundary between the
// application core and external AI/LLM services, following the hexagonal
// architecture pattern.
type CourseGenerator interface {
	// GenerateCourse creates a draft course from the given request.
	// The returned course carries fresh identifiers and draft status; the
	// owner reference is left unset and is assigned by the caller.
	// Returns an error wrapping one of this package's sentinels if
	// generation fails (see errors.go).
	GenerateCourse(ctx context.Context, req domain.GenerationRequest) (*domain.Course, error)
}

// ModelProvider is the capability implemented by each LLM vendor adapter.
// An adapter performs exactly one external request per call and returns the
// first text completion verbatim. Implementations wrap ErrProviderCallFailed
// for transport/provider failures and ErrEmptyResponse when the provider
// returned no usable text. No retries are performed at this layer.
type ModelProvider interface {
	// Generate sends the prompt to the vendor's API using the given model
	// identifier and returns the raw response text.
	Generate(ctx context.Context, prompt string, model domain.AIModel) (string, error)
}
