package github

import (
	"errors"
	"fmt"
	"time"
)

// * RateLimitError is the root cause of a RATE_LIMITED ApplicationError
type RateLimitError struct {
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return "github rate limit exhausted"
	}
	return fmt.Sprintf("github rate limit exhausted until %s", e.Reset.UTC().Format(time.RFC3339))
}

// * AsRateLimit extracts the reset time of a rate-limited request
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
