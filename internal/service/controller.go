package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/KOFI-GYIMAH/github-activity/internal/github"
	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/KOFI-GYIMAH/github-activity/pkg/errors"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
)

const rateLimitHint = "Set GITHUB_TOKEN to raise the rate limit."

type GitHubClient interface {
	ListRepositories(ctx context.Context, username string) ([]github.Repository, error)
	FetchCommitActivity(ctx context.Context, owner, repo string, maxRetries int) ([]github.WeeklyCommitActivity, error)
	HasToken() bool
	RateLimit() (github.RateLimit, bool)
}

// * Controller owns the dashboard state. It moves idle -> loading -> loaded|error
// * and back to loading on a new search or selection. Every fetch carries the
// * generation it started under; results for an older generation are dropped.
type Controller struct {
	githubClient GitHubClient
	maxRetries   int

	mu    sync.Mutex
	state models.ViewState

	publishMu sync.Mutex
	listeners []func(models.ViewState)
}

func NewController(githubClient GitHubClient, maxRetries int) *Controller {
	return &Controller{
		githubClient: githubClient,
		maxRetries:   maxRetries,
		state: models.ViewState{
			Status:        models.StatusIdle,
			Repositories:  []models.Repository{},
			Activity:      []models.CommitActivityWeek{},
			Authenticated: githubClient.HasToken(),
		},
	}
}

// * State returns a copy of the current view state
func (c *Controller) State() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.syncRateLimit()
	return c.state.Clone()
}

// * Subscribe registers fn to receive a snapshot after every transition
func (c *Controller) Subscribe(fn func(models.ViewState)) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// * Search loads the repositories of username, selects the first one and
// * loads its commit activity.
func (c *Controller) Search(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New(
			errors.RefValidation,
			"Please enter a GitHub username",
			"The username must not be empty",
			nil,
			errors.LevelError,
		)
	}

	c.mu.Lock()
	gen := c.begin()
	c.state.Username = username
	c.mu.Unlock()
	c.publish()

	logger.Info("Searching repositories of %s", username)
	ghRepos, err := c.githubClient.ListRepositories(ctx, username)

	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		logger.Debug("Dropping repositories of %s, superseded", username)
		return nil
	}

	if err != nil {
		c.state.Repositories = []models.Repository{}
		c.state.Owner = ""
		c.state.Selection = ""
		c.state.Activity = []models.CommitActivityWeek{}
		c.fail(err)
		c.mu.Unlock()
		c.publish()
		return err
	}

	repos := make([]models.Repository, len(ghRepos))
	for i, r := range ghRepos {
		repos[i] = toRepository(r)
	}
	c.state.Repositories = repos
	c.state.Owner = username
	c.state.Activity = []models.CommitActivityWeek{}
	c.state.Selection = ""

	if len(repos) == 0 {
		c.succeed()
		c.mu.Unlock()
		c.publish()
		return nil
	}

	selection := repos[0].Name
	c.state.Selection = selection
	c.mu.Unlock()
	c.publish()

	return c.loadActivity(ctx, gen, username, selection, true)
}

// * Select switches to another loaded repository and loads its activity.
// * The repository list is left as is.
func (c *Controller) Select(ctx context.Context, name string) error {
	c.mu.Lock()
	if !c.hasRepository(name) {
		c.mu.Unlock()
		return errors.New(
			errors.RefValidation,
			"Unknown repository",
			fmt.Sprintf("%s is not one of the loaded repositories", name),
			nil,
			errors.LevelError,
		)
	}

	// a search still waiting for its repositories is superseded
	gen := c.begin()
	owner := c.state.Owner
	c.state.Username = owner
	c.state.Selection = name
	c.state.Activity = []models.CommitActivityWeek{}
	c.mu.Unlock()
	c.publish()

	return c.loadActivity(ctx, gen, owner, name, false)
}

// * Refresh reloads the activity of the current selection. It does nothing
// * while nothing is selected or another fetch is running.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Selection == "" || c.state.Status == models.StatusLoading {
		c.mu.Unlock()
		return nil
	}

	gen := c.begin()
	owner, name := c.state.Owner, c.state.Selection
	c.mu.Unlock()
	c.publish()

	return c.loadActivity(ctx, gen, owner, name, false)
}

// * loadActivity fetches the series of owner/name. A failure inside a search
// * also drops the repositories; otherwise the list stays.
func (c *Controller) loadActivity(ctx context.Context, gen uint64, owner, name string, fromSearch bool) error {
	weeks, err := c.githubClient.FetchCommitActivity(ctx, owner, name, c.maxRetries)

	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		logger.Debug("Dropping commit activity of %s/%s, superseded", owner, name)
		return nil
	}

	if err != nil {
		c.state.Activity = []models.CommitActivityWeek{}
		if fromSearch {
			c.state.Repositories = []models.Repository{}
			c.state.Owner = ""
			c.state.Selection = ""
		}
		c.fail(err)
		c.mu.Unlock()
		c.publish()
		return err
	}

	activity := make([]models.CommitActivityWeek, len(weeks))
	for i, w := range weeks {
		activity[i] = toActivityWeek(w)
	}
	c.state.Activity = activity
	c.succeed()
	c.mu.Unlock()
	c.publish()

	logger.Info("Loaded %d weeks of commit activity for %s/%s", len(activity), owner, name)
	return nil
}

// * begin starts a new fetch generation; caller holds mu
func (c *Controller) begin() uint64 {
	c.state.Generation++
	c.state.Status = models.StatusLoading
	return c.state.Generation
}

func (c *Controller) stale(gen uint64) bool {
	return gen != c.state.Generation
}

func (c *Controller) succeed() {
	c.state.Status = models.StatusLoaded
	c.state.Error = ""
	c.syncRateLimit()
}

func (c *Controller) fail(err error) {
	c.state.Status = models.StatusError
	c.state.Error = c.describe(err)
	c.syncRateLimit()
	logger.Error("%v", err)
}

func (c *Controller) hasRepository(name string) bool {
	for _, r := range c.state.Repositories {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (c *Controller) syncRateLimit() {
	rl, ok := c.githubClient.RateLimit()
	if !ok {
		return
	}
	c.state.RateLimit = &models.RateLimit{
		Limit:     rl.Limit,
		Remaining: rl.Remaining,
		Reset:     rl.Reset,
	}
}

// * describe turns err into the message shown to the user
func (c *Controller) describe(err error) string {
	if errors.HasReference(err, errors.RefRateLimit) {
		msg := "GitHub API rate limit exceeded."
		if rl, ok := github.AsRateLimit(err); ok && !rl.Reset.IsZero() {
			msg = fmt.Sprintf("GitHub API rate limit exceeded. Resets at %s.", rl.Reset.UTC().Format("2006-01-02 15:04:05 MST"))
		}
		if !c.githubClient.HasToken() {
			msg += " " + rateLimitHint
		}
		return msg
	}

	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Reference == errors.RefTransport && appErr.Detail != "" {
			return appErr.Title + ": " + appErr.Detail
		}
		return appErr.Title
	}

	return err.Error()
}

// * publish hands the latest snapshot to every listener. Serialising on
// * publishMu keeps the last delivery equal to the final state.
func (c *Controller) publish() {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	if len(c.listeners) == 0 {
		return
	}

	snapshot := c.State()
	for _, fn := range c.listeners {
		fn(snapshot)
	}
}
