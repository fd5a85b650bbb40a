package models

import "time"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusLoaded  Status = "loaded"
)

// * Last quota GitHub reported; zero value means no response seen yet
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// * ResetsIn is the time left before the quota resets, never negative
func (r RateLimit) ResetsIn() time.Duration {
	if r.Reset.IsZero() {
		return 0
	}
	return max(time.Until(r.Reset), 0).Round(time.Second)
}

// * ViewState is a snapshot of everything the dashboard renders. Selection is
// * empty until repositories are loaded, and Activity always belongs to it.
// * Username is the last search; Owner is the user the Repositories belong to.
type ViewState struct {
	Username      string               `json:"username"`
	Owner         string               `json:"owner"`
	Status        Status               `json:"status"`
	Error         string               `json:"error,omitempty"`
	Repositories  []Repository         `json:"repositories"`
	Selection     string               `json:"selection"`
	Activity      []CommitActivityWeek `json:"activity"`
	Authenticated bool                 `json:"authenticated"`
	RateLimit     *RateLimit           `json:"rate_limit,omitempty"`
	Generation    uint64               `json:"generation"`
}

func (s ViewState) Loading() bool {
	return s.Status == StatusLoading
}

// * Clone copies the slices so callers can't alias controller state
func (s ViewState) Clone() ViewState {
	out := s
	if s.Repositories != nil {
		out.Repositories = append([]Repository(nil), s.Repositories...)
	}
	if s.Activity != nil {
		out.Activity = append([]CommitActivityWeek(nil), s.Activity...)
	}
	if s.RateLimit != nil {
		rl := *s.RateLimit
		out.RateLimit = &rl
	}
	return out
}
