// Package openai implements the generation.ModelProvider interface against
// the OpenAI chat completions REST API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/generation"
)

// DefaultBaseURL is the production OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// Generation parameters shared by all course generation calls.
const (
	temperature = 0.7
	maxTokens   = 4000
)

// Client calls the OpenAI chat completions API. It performs exactly one
// request per Generate call with no retries; a failed call fails the whole
// generation attempt.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Ensure Client implements the generation.ModelProvider interface
var _ generation.ModelProvider = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a new OpenAI client with the given API key.
// Returns an error wrapping generation.ErrInvalidConfig if the key is empty;
// callers use that to leave the adapter unregistered rather than fail startup.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
		logger:  logger.With(slog.String("component", "openai_client")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// chatRequest is the request body for the chat completions endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatMessage is a single chat turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate sends the prompt as a system+user chat exchange and returns the
// first completion's text verbatim.
func (c *Client) Generate(ctx context.Context, prompt string, model domain.AIModel) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: string(model),
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: encode request: %v", generation.ErrProviderCallFailed, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%w: openai: build request: %v", generation.ErrProviderCallFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.DebugContext(ctx, "calling OpenAI chat completions",
		slog.String("model", string(model)),
		slog.Int("prompt_length", len(prompt)))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", generation.ErrProviderCallFailed, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "failed to close response body", slog.String("error", cerr.Error()))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: openai: read response: %v", generation.ErrProviderCallFailed, err)
	}

	var parsed chatResponse
	// Tolerate undecodable bodies on error statuses; the status itself is
	// the primary signal there.
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: openai: %s (status %d)",
				generation.ErrProviderCallFailed, parsed.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: openai: unexpected status %d",
			generation.ErrProviderCallFailed, resp.StatusCode)
	}

	if decodeErr != nil {
		return "", fmt.Errorf("%w: openai: decode response: %v",
			generation.ErrProviderCallFailed, decodeErr)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: openai", generation.ErrEmptyResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}
