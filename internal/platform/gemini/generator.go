// Package gemini implements the generation.ModelProvider interface using
// Google's Gemini API via the google.golang.org/genai client.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/generation"
	"google.golang.org/genai"
)

// Generation parameters shared by all course generation calls.
const (
	temperature     = float32(0.7)
	maxOutputTokens = int32(4000)
)

// Generator wraps a Gemini API client. One request per Generate call,
// no retries.
type Generator struct {
	client *genai.Client
	logger *slog.Logger
}

// Ensure Generator implements the generation.ModelProvider interface
var _ generation.ModelProvider = (*Generator)(nil)

// NewGenerator creates a new Gemini-backed provider adapter with the given
// API key. Returns an error wrapping generation.ErrInvalidConfig if the key
// is empty or the client cannot be constructed.
func NewGenerator(ctx context.Context, apiKey string, logger *slog.Logger) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		client: client,
		logger: logger.With(slog.String("component", "gemini_generator")),
	}, nil
}

// Generate sends the prompt to the Gemini API and returns the response text
// verbatim.
func (g *Generator) Generate(ctx context.Context, prompt string, model domain.AIModel) (string, error) {
	g.logger.DebugContext(ctx, "calling Gemini API",
		slog.String("model", string(model)),
		slog.Int("prompt_length", len(prompt)))

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   maxOutputTokens,
		SystemInstruction: genai.NewContentFromText(generation.SystemPrompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, string(model), genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", generation.ErrProviderCallFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini", generation.ErrEmptyResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: gemini: content blocked by safety filters",
			generation.ErrProviderCallFailed)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini", generation.ErrEmptyResponse)
	}

	return text, nil
}
