package github

import "time"

type Repository struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
}

// * Entry of /repos/{owner}/{repo}/stats/commit_activity
type WeeklyCommitActivity struct {
	Total int   `json:"total"`
	Week  int64 `json:"week"`
	Days  []int `json:"days"`
}

type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}
