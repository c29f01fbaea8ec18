package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/ratelimit"
)

// RateLimitMiddleware enforces a per-user request limit on the routes it
// wraps. It must run after authentication so the user ID is available;
// unauthenticated requests fall back to the remote address as the key.
type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
}

// NewRateLimitMiddleware creates a RateLimitMiddleware around the given
// limiter.
func NewRateLimitMiddleware(limiter *ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit wraps next with the rate limit check. Denied requests receive a
// 429 with a Retry-After header.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if userID, ok := GetUserID(r); ok {
			key = userID.String()
		}

		result := m.limiter.Check(key)

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Rate limit exceeded, please try again later", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
