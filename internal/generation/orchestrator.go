package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/google/uuid"
)

// Orchestrator implements CourseGenerator by dispatching generation
// requests to the provider adapter registered for the requested model's
// family. It holds no state across calls: each generation is a single
// stateless request/response cycle with exactly one attempt. The caller
// decides whether to retry a failed generation.
type Orchestrator struct {
	providers map[domain.ModelFamily]ModelProvider
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// Ensure Orchestrator implements the CourseGenerator interface
var _ CourseGenerator = (*Orchestrator)(nil)

// NewOrchestrator creates a new Orchestrator with the given provider
// adapters, keyed by model family. Adapters whose credentials are absent
// must simply not appear in the map; requests routed to a missing family
// fail with ErrProviderNotConfigured before any network call is attempted.
// If logger is nil, a default logger will be used.
func NewOrchestrator(providers map[domain.ModelFamily]ModelProvider, logger *slog.Logger) (*Orchestrator, error) {
	if providers == nil {
		return nil, errors.New("providers map cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		providers: providers,
		logger:    logger.With(slog.String("component", "generation_orchestrator")),
		timeFunc:  time.Now,
	}, nil
}

// GenerateCourse runs the full pipeline for one request: build prompt,
// call the provider, normalize the response, and assemble a draft course.
// The owner reference is intentionally left unset; assignment is the
// caller's responsibility.
func (o *Orchestrator) GenerateCourse(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	family, err := req.Model.Family()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, req.Model)
	}

	provider, ok := o.providers[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, family)
	}

	prompt := BuildCoursePrompt(req)

	o.logger.InfoContext(ctx, "dispatching generation request",
		slog.String("model", string(req.Model)),
		slog.String("family", string(family)),
		slog.Int("prompt_length", len(prompt)))

	start := o.timeFunc()
	raw, err := provider.Generate(ctx, prompt, req.Model)
	elapsed := o.timeFunc().Sub(start)

	if err != nil {
		o.logger.ErrorContext(ctx, "provider call failed",
			slog.String("model", string(req.Model)),
			slog.String("family", string(family)),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()))
		return nil, err
	}

	normalized, err := NormalizeCourse(raw)
	if err != nil {
		o.logger.ErrorContext(ctx, "failed to normalize provider response",
			slog.String("model", string(req.Model)),
			slog.Int("response_length", len(raw)),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := o.timeFunc().UTC()
	course := &domain.Course{
		ID:                uuid.New(),
		Title:             req.Title,
		Description:       normalized.Description,
		Level:             req.Level,
		Language:          req.Language,
		Modules:           normalized.Modules,
		LearningOutcomes:  normalized.LearningOutcomes,
		Status:            domain.CourseStatusDraft,
		Tags:              mergeTags(normalized.Tags, req.Tags),
		EstimatedDuration: normalized.EstimatedDuration,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	o.logger.InfoContext(ctx, "course generated",
		slog.String("course_id", course.ID.String()),
		slog.String("model", string(req.Model)),
		slog.Int("module_count", len(course.Modules)),
		slog.Duration("elapsed", elapsed))

	return course, nil
}

// mergeTags appends request-supplied tags to model-produced tags, dropping
// duplicates while preserving order.
func mergeTags(modelTags, requestTags []string) []string {
	merged := make([]string, 0, len(modelTags)+len(requestTags))
	seen := make(map[string]struct{}, len(modelTags)+len(requestTags))
	for _, t := range modelTags {
		if _, dup := seen[t]; !dup && t != "" {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	for _, t := range requestTags {
		if _, dup := seen[t]; !dup && t != "" {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	return merged
}
