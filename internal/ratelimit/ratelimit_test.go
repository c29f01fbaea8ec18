package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock lets tests advance time deterministically.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(maxRequests int, window time.Duration) (*Limiter, *fixedClock) {
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(maxRequests, window)
	l.now = clock.Now
	return l, clock
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		result := l.Check("user-1")
		require.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result := l.Check("user-1")
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestLimiterWindowReset(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(2, time.Minute)

	l.Check("user-1")
	l.Check("user-1")
	assert.False(t, l.Check("user-1").Allowed)

	clock.Advance(61 * time.Second)

	result := l.Check("user-1")
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Remaining)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Check("user-1").Allowed)
	assert.False(t, l.Check("user-1").Allowed)
	assert.True(t, l.Check("user-2").Allowed)
}

func TestLimiterDeniedRequestDoesNotConsume(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(1, time.Minute)

	require.True(t, l.Check("user-1").Allowed)
	first := l.Check("user-1")
	assert.False(t, first.Allowed)

	// Denials must not push the reset time forward.
	clock.Advance(61 * time.Second)
	assert.True(t, l.Check("user-1").Allowed)
}

func TestLimiterReset(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(1, time.Minute)

	require.True(t, l.Check("user-1").Allowed)
	require.False(t, l.Check("user-1").Allowed)

	l.Reset("user-1")
	assert.True(t, l.Check("user-1").Allowed)
}

func TestLimiterPrune(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(5, time.Minute)

	l.Check("user-1")
	l.Check("user-2")
	require.Len(t, l.entries, 2)

	clock.Advance(2 * time.Minute)
	l.Prune()
	assert.Empty(t, l.entries)
}

func TestLimiterResetAtReported(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(1, time.Minute)

	result := l.Check("user-1")
	assert.Equal(t, clock.Now().Add(time.Minute), result.ResetAt)
}

func TestLimiterDefaultsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	l := New(0, 0)
	assert.Equal(t, 10, l.maxRequests)
	assert.Equal(t, time.Minute, l.window)
}

func TestLimiterConcurrentAccess(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(100, time.Minute)

	var wg sync.WaitGroup
	allowed := make([]bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allowed[i] = l.Check("shared").Allowed
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 100, count)
}
