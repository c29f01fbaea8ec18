package domain

import "errors"

// AIModel identifies one of the supported text-generation models.
type AIModel string

// Supported model identifiers
const (
	ModelGPT4           AIModel = "gpt-4"
	ModelGPT35Turbo     AIModel = "gpt-3.5-turbo"
	ModelGeminiPro      AIModel = "gemini-pro"
	ModelClaude3        AIModel = "claude-3"
	ModelClaude3Sonnet  AIModel = "claude-3-sonnet"
)

// ModelFamily identifies the vendor behind a model, and therefore which
// provider adapter handles it.
type ModelFamily string

// Supported model families
const (
	FamilyOpenAI    ModelFamily = "openai"
	FamilyGemini    ModelFamily = "gemini"
	FamilyAnthropic ModelFamily = "anthropic"
)

// GenerationRequest validation errors
var (
	// ErrRequestTitleEmpty is returned when a generation request has no title.
	ErrRequestTitleEmpty = errors.New("generation request title cannot be empty")

	// ErrRequestLanguageEmpty is returned when a generation request has no language.
	ErrRequestLanguageEmpty = errors.New("generation request language cannot be empty")

	// ErrUnknownModel is returned when a model identifier is not recognized.
	ErrUnknownModel = errors.New("unknown AI model")
)

// GenerationRequest describes a course to be generated. It is an immutable
// input constructed by the caller and consumed once per generation attempt.
type GenerationRequest struct {
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	Level              CourseLevel `json:"level"`
	Language           string      `json:"language"`
	Model              AIModel     `json:"ai_model"`
	IncludeQuizzes     bool        `json:"include_quizzes"`
	IncludeAssignments bool        `json:"include_assignments"`
	CustomInstructions string      `json:"custom_instructions,omitempty"`
	Tags               []string    `json:"tags,omitempty"`
}

// Validate checks if the GenerationRequest has valid data.
// Returns an error if any field fails validation.
func (r *GenerationRequest) Validate() error {
	if r.Title == "" {
		return ErrRequestTitleEmpty
	}

	if !IsValidCourseLevel(r.Level) {
		return ErrInvalidCourseLevel
	}

	if r.Language == "" {
		return ErrRequestLanguageEmpty
	}

	if _, err := r.Model.Family(); err != nil {
		return err
	}

	return nil
}

// Family returns the vendor family for the model identifier.
// Returns ErrUnknownModel for identifiers outside the supported set.
func (m AIModel) Family() (ModelFamily, error) {
	switch m {
	case ModelGPT4, ModelGPT35Turbo:
		return FamilyOpenAI, nil
	case ModelGeminiPro:
		return FamilyGemini, nil
	case ModelClaude3, ModelClaude3Sonnet:
		return FamilyAnthropic, nil
	default:
		return "", ErrUnknownModel
	}
}
