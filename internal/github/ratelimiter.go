package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
)

// * RateLimiter records the quota headers of every GitHub response. It only
// * observes; exhausted quota surfaces as a RATE_LIMITED error from the client.
type RateLimiter struct {
	mu        sync.Mutex
	seen      bool
	limit     int
	remaining int
	reset     time.Time
	lowWarn   int
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		lowWarn: 10,
	}
}

func (r *RateLimiter) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := headers.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}

	if val, err := strconv.Atoi(remaining); err == nil {
		r.remaining = val
		r.seen = true
	}

	if limit := headers.Get("X-RateLimit-Limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

// * Snapshot returns the last observed quota, false before any response carried one
func (r *RateLimiter) Snapshot() (RateLimit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RateLimit{
		Limit:     r.limit,
		Remaining: r.remaining,
		Reset:     r.reset,
	}, r.seen
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// * parseReset reads X-RateLimit-Reset, zero time when missing or malformed
func parseReset(headers http.Header) time.Time {
	val, err := strconv.ParseInt(headers.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(val, 0)
}
