// Package generation implements the course generation pipeline: building a
// model-specific prompt from a generation request, dispatching it to one of
// the configured LLM provider adapters, and normalizing the provider's
// free-text response into the canonical course structure. It abstracts the
// details of LLM API integration behind the ModelProvider interface so the
// application never couples to a specific external service.
package generation
