package service

import (
	"github.com/KOFI-GYIMAH/github-activity/internal/github"
	"github.com/KOFI-GYIMAH/github-activity/internal/models"
)

func toRepository(r github.Repository) models.Repository {
	return models.Repository{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StarCount:   max(r.StargazersCount, 0),
		Language:    r.Language,
		URL:         r.HTMLURL,
	}
}

// * toActivityWeek keeps at most seven daily counts; missing days stay zero
func toActivityWeek(w github.WeeklyCommitActivity) models.CommitActivityWeek {
	week := models.CommitActivityWeek{
		Total:     max(w.Total, 0),
		WeekStart: w.Week,
	}
	for d := 0; d < len(w.Days) && d < models.DaysPerWeek; d++ {
		week.Days[d] = max(w.Days[d], 0)
	}
	return week
}
