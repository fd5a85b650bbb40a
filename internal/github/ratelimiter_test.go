package github

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_updateFromHeaders(t *testing.T) {
	rl := NewRateLimiter()

	_, seen := rl.Snapshot()
	assert.False(t, seen)

	rl.updateFromHeaders(http.Header{})
	_, seen = rl.Snapshot()
	assert.False(t, seen, "responses without quota headers are ignored")

	h := http.Header{}
	h.Set("X-RateLimit-Limit", "5000")
	h.Set("X-RateLimit-Remaining", "4999")
	h.Set("X-RateLimit-Reset", "1760886245")
	rl.updateFromHeaders(h)

	quota, seen := rl.Snapshot()
	require.True(t, seen)
	assert.Equal(t, 5000, quota.Limit)
	assert.Equal(t, 4999, quota.Remaining)
	assert.Equal(t, time.Unix(1760886245, 0), quota.Reset)
}

func TestRateLimiter_MiddlewareDoesNotRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	rl := NewRateLimiter()
	client := &http.Client{Transport: rl.Middleware(http.DefaultTransport)}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, calls)

	quota, seen := rl.Snapshot()
	assert.True(t, seen)
	assert.Equal(t, 0, quota.Remaining)
}

func TestParseReset(t *testing.T) {
	h := http.Header{}
	assert.True(t, parseReset(h).IsZero())

	h.Set("X-RateLimit-Reset", "not-a-number")
	assert.True(t, parseReset(h).IsZero())

	h.Set("X-RateLimit-Reset", "1760886245")
	assert.Equal(t, time.Unix(1760886245, 0), parseReset(h))
}
