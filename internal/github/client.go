package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/pkg/errors"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
)

var (
	baseURL = "https://api.github.com"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
	token       string
	baseURL     string
	retryDelay  time.Duration
}

type Option func(*Client)

// * WithBaseURL points the client at another API root, e.g. GitHub Enterprise
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// * WithRetryDelay overrides the fixed pause between commit-activity polls
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

func NewClient(token string, opts ...Option) *Client {
	rl := NewRateLimiter()

	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: rl.Middleware(http.DefaultTransport),
	}

	c := &Client{
		httpClient:  client,
		rateLimiter: rl,
		token:       token,
		baseURL:     baseURL,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) RateLimit() (RateLimit, bool) {
	return c.rateLimiter.Snapshot()
}

func (c *Client) makeRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// * ListRepositories returns a user's repositories, most recently updated first.
// * Only the first page is requested.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	path := fmt.Sprintf("/users/%s/repos?sort=updated", url.PathEscape(username))

	resp, err := c.makeRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, transportError(
			"Failed to fetch repositories from GitHub",
			fmt.Sprintf("Could not retrieve repositories of %s from GitHub API", username),
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(
			errors.RefNotFound,
			"User not found",
			fmt.Sprintf("The GitHub user %s does not exist", username),
			nil,
			errors.LevelInfo,
		).WithStatus(http.StatusNotFound)
	}

	if err := checkStatus(resp, "repositories of "+username); err != nil {
		return nil, err
	}

	var repos []Repository
	if err := decodeBody(resp, &repos); err != nil {
		return nil, err
	}

	logger.Info("Fetched %d repositories for %s", len(repos), username)
	return repos, nil
}

// * FetchCommitActivity returns the last year of weekly commit counts.
// *
// * GitHub answers 202 while it computes the statistics; the request is then
// * repeated after retryDelay, at most maxRetries times. Running out of
// * retries yields an empty series, not an error. 204 means no data.
func (c *Client) FetchCommitActivity(ctx context.Context, owner, repo string, maxRetries int) ([]WeeklyCommitActivity, error) {
	path := fmt.Sprintf("/repos/%s/%s/stats/commit_activity", url.PathEscape(owner), url.PathEscape(repo))
	target := owner + "/" + repo

	for attempt := 0; ; attempt++ {
		resp, err := c.makeRequest(ctx, http.MethodGet, path)
		if err != nil {
			return nil, transportError(
				"Failed to fetch commit activity from GitHub",
				fmt.Sprintf("Could not retrieve commit activity of %s from GitHub API", target),
				err,
			)
		}

		switch resp.StatusCode {
		case http.StatusAccepted:
			resp.Body.Close()
			if attempt >= maxRetries {
				logger.Warn("Commit activity for %s still being computed after %d retries", target, maxRetries)
				return []WeeklyCommitActivity{}, nil
			}
			logger.Debug("Commit activity for %s not ready, retry %d/%d in %s", target, attempt+1, maxRetries, c.retryDelay)
			if err := sleep(ctx, c.retryDelay); err != nil {
				return nil, transportError(
					"Failed to fetch commit activity from GitHub",
					fmt.Sprintf("Stopped waiting for commit activity of %s", target),
					err,
				)
			}
			continue

		case http.StatusNoContent:
			resp.Body.Close()
			logger.Info("No commit activity for %s", target)
			return []WeeklyCommitActivity{}, nil
		}

		weeks, err := c.readActivity(resp, target)
		resp.Body.Close()
		return weeks, err
	}
}

func (c *Client) readActivity(resp *http.Response, target string) ([]WeeklyCommitActivity, error) {
	if err := checkStatus(resp, "commit activity of "+target); err != nil {
		return nil, err
	}

	var weeks []WeeklyCommitActivity
	if err := decodeBody(resp, &weeks); err != nil {
		return nil, err
	}
	if weeks == nil {
		weeks = []WeeklyCommitActivity{}
	}

	logger.Info("Fetched %d weeks of commit activity for %s", len(weeks), target)
	return weeks, nil
}

// * checkStatus maps a non-2xx response to RATE_LIMITED or GITHUB_API_ERROR
func checkStatus(resp *http.Response, what string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	exhausted := resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
	if exhausted || resp.StatusCode == http.StatusTooManyRequests {
		reset := parseReset(resp.Header)
		return errors.New(
			errors.RefRateLimit,
			"GitHub API rate limit exceeded",
			fmt.Sprintf("Rate limit resets at %s", reset.Format(time.RFC1123)),
			&RateLimitError{Reset: reset},
			errors.LevelWarning,
		).WithStatus(http.StatusTooManyRequests)
	}

	return transportError(
		"Unexpected response from GitHub API",
		fmt.Sprintf("GitHub API returned status %d when fetching %s", resp.StatusCode, what),
		nil,
	)
}

func decodeBody(resp *http.Response, v any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(
			"Failed to read GitHub API response",
			"Could not read the response body from GitHub API",
			err,
		)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return transportError(
			"Failed to parse GitHub API response",
			"Could not understand the response from GitHub API",
			err,
		)
	}
	return nil
}

func transportError(title, detail string, cause error) *errors.ApplicationError {
	return errors.New(
		errors.RefTransport,
		title,
		detail,
		cause,
		errors.LevelError,
	).WithStatus(http.StatusBadGateway)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
