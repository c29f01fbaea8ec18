// Package anthropic implements the generation.ModelProvider interface
// against the Anthropic messages REST API.
package anthropic

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

// DefaultBaseURL is the production Anthropic API endpoint.
const DefaultBaseURL = "https://api.anthropic.com/v1"

// apiVersion is the required anthropic-version header value.
const apiVersion = "2023-06-01"

// maxTokens caps the generation token ceiling for course output.
const maxTokens = 4000

// Client calls the Anthropic messages API. One request per Generate call,
// no retries.
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

// NewClient creates a new Anthropic client with the given API key.
// Returns an error wrapping generation.ErrInvalidConfig if the key is empty.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key cannot be empty", generation.ErrInvalidConfig)
	}

	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
		logger:  logger.With(slog.String("component", "anthropic_client")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// messagesRequest is the request body for the messages endpoint.
type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

// chatMessage is a single conversation turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the subset of the messages response we consume.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt as a single user message and returns the first
// text block of the response verbatim.
func (c *Client) Generate(ctx context.Context, prompt string, model domain.AIModel) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     string(model),
		MaxTokens: maxTokens,
		System:    generation.SystemPrompt,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: encode request: %v", generation.ErrProviderCallFailed, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/messages",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: build request: %v", generation.ErrProviderCallFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	c.logger.DebugContext(ctx, "calling Anthropic messages API",
		slog.String("model", string(model)),
		slog.Int("prompt_length", len(prompt)))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %v", generation.ErrProviderCallFailed, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "failed to close response body", slog.String("error", cerr.Error()))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: read response: %v", generation.ErrProviderCallFailed, err)
	}

	var parsed messagesResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: anthropic: %s (status %d)",
				generation.ErrProviderCallFailed, parsed.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: anthropic: unexpected status %d",
			generation.ErrProviderCallFailed, resp.StatusCode)
	}

	if decodeErr != nil {
		return "", fmt.Errorf("%w: anthropic: decode response: %v",
			generation.ErrProviderCallFailed, decodeErr)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("%w: anthropic", generation.ErrEmptyResponse)
}
