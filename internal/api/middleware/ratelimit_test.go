package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/courseforge/courseforge-api/internal/api/middleware"
	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/ratelimit"
)

func TestLimit(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	requestAs := func(userID uuid.UUID) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/courses/generate", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		return req.WithContext(ctx)
	}

	t.Run("requests within the limit pass through", func(t *testing.T) {
		m := middleware.NewRateLimitMiddleware(ratelimit.New(2, time.Minute))
		handler := m.Limit(okHandler)
		userID := uuid.New()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestAs(userID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, requestAs(userID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("requests over the limit get 429 with Retry-After", func(t *testing.T) {
		m := middleware.NewRateLimitMiddleware(ratelimit.New(1, time.Minute))
		handler := m.Limit(okHandler)
		userID := uuid.New()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestAs(userID))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, requestAs(userID))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "Rate limit exceeded")
	})

	t.Run("limits are per user", func(t *testing.T) {
		m := middleware.NewRateLimitMiddleware(ratelimit.New(1, time.Minute))
		handler := m.Limit(okHandler)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestAs(uuid.New()))
		assert.Equal(t, http.StatusOK, w.Code)

		// A different user has an independent budget.
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, requestAs(uuid.New()))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated requests keyed by remote address", func(t *testing.T) {
		m := middleware.NewRateLimitMiddleware(ratelimit.New(1, time.Minute))
		handler := m.Limit(okHandler)

		req := httptest.NewRequest(http.MethodPost, "/api/courses/generate", nil)
		req.RemoteAddr = "203.0.113.7:4567"

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}
