package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken     string
	GitHubAPIURL    string
	ServerPort      string
	MaxRetries      int
	RetryDelay      time.Duration
	RefreshInterval time.Duration
	Repository      string
	Debug           bool
}

// * LoadConfiguration reads the optional .env file, then the environment.
// * Only malformed values are errors; GITHUB_TOKEN may be absent.
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken:     strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		GitHubAPIURL:    os.Getenv("GITHUB_API_URL"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		Repository:      strings.TrimSpace(os.Getenv("REPOSITORY")),
		Debug:           os.Getenv("DEBUG") == "true",
		MaxRetries:      3,
		RetryDelay:      time.Second,
	}

	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = "https://api.github.com"
	}
	cfg.GitHubAPIURL = strings.TrimRight(cfg.GitHubAPIURL, "/")

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8081"
	}
	if !strings.Contains(cfg.ServerPort, ":") {
		cfg.ServerPort = ":" + cfg.ServerPort
	}

	if v := os.Getenv("COMMIT_ACTIVITY_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("COMMIT_ACTIVITY_MAX_RETRIES must be a non-negative integer, got %q", v)
		}
		cfg.MaxRetries = n
	}

	if v := os.Getenv("COMMIT_ACTIVITY_RETRY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("COMMIT_ACTIVITY_RETRY_DELAY must be a duration, got %q", v)
		}
		cfg.RetryDelay = d
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("REFRESH_INTERVAL must be a duration, got %q", v)
		}
		cfg.RefreshInterval = d
	}

	if cfg.Repository != "" && strings.Contains(cfg.Repository, "/") {
		if _, _, err := ParseRepository(cfg.Repository); err != nil {
			return nil, fmt.Errorf("REPOSITORY: %w", err)
		}
	}

	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN not set, GitHub allows 60 unauthenticated requests per hour")
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

// * ParseRepository takes a string in the format owner/name and returns the
// * owner and name as two separate strings. If the string does not match
// * the expected format, an error is returned.
func ParseRepository(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository should be in format owner/name")
	}
	return parts[0], parts[1], nil
}
