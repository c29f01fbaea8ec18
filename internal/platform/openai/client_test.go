package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	client, err := NewClient("sk-test", nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "{\"description\":\"d\"}"}}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient("sk-test", nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "build a course", domain.ModelGPT4)
	require.NoError(t, err)
	assert.Equal(t, `{"description":"d"}`, text)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4", gotBody.Model)
	assert.InDelta(t, 0.7, gotBody.Temperature, 0.001)
	assert.Equal(t, 4000, gotBody.MaxTokens)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "build a course", gotBody.Messages[1].Content)
}

func TestGenerateHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	client, err := NewClient("sk-test", nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt", domain.ModelGPT35Turbo)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderCallFailed)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGenerateEmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := NewClient("sk-test", nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt", domain.ModelGPT4)
	assert.ErrorIs(t, err, generation.ErrEmptyResponse)
}

func TestGenerateNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClient("sk-test", nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt", domain.ModelGPT4)
	assert.ErrorIs(t, err, generation.ErrProviderCallFailed)
}

func TestGenerateUndecodableErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer server.Close()

	client, err := NewClient("sk-test", nil, WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt", domain.ModelGPT4)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderCallFailed)
	assert.Contains(t, err.Error(), "502")
}
