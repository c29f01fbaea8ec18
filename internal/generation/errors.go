package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when course generation fails for any
	// general reason. More specific sentinels below are wrapped where known.
	ErrGenerationFailed = errors.New("failed to generate course")

	// ErrUnsupportedModel is returned when the requested model identifier
	// does not map to any known provider family.
	ErrUnsupportedModel = errors.New("unsupported AI model")

	// ErrProviderNotConfigured is returned when the requested model's
	// provider has no configured credential and is therefore unavailable.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrProviderCallFailed is returned when the external generation call
	// fails (network, HTTP status, provider-side error).
	ErrProviderCallFailed = errors.New("provider call failed")

	// ErrEmptyResponse is returned when the provider returned no usable text.
	ErrEmptyResponse = errors.New("no response from provider")

	// ErrParseFailed is returned when no JSON object can be located in the
	// provider's text, or the located text is not valid JSON. Missing or
	// malformed fields inside valid JSON are never an error; they are
	// defaulted by the normalizer.
	ErrParseFailed = errors.New("failed to parse model output")

	// ErrInvalidConfig is returned when a provider adapter configuration is
	// invalid at construction time.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
