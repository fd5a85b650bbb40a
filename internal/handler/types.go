package handler

import (
	"github.com/KOFI-GYIMAH/github-activity/internal/activity"
	"github.com/KOFI-GYIMAH/github-activity/internal/models"
)

type SearchRequest struct {
	Username string `json:"username"`
}

type SelectRequest struct {
	Name string `json:"name"`
}

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// * Views bundles the three projections of the selected repository
type Views struct {
	Weekly  activity.View    `json:"weekly"`
	Monthly activity.View    `json:"monthly"`
	Yearly  activity.HeatMap `json:"yearly"`
	Summary activity.Summary `json:"summary"`
}

func buildViews(state models.ViewState) Views {
	return Views{
		Weekly:  activity.WeeklyView(state.Activity),
		Monthly: activity.MonthlyView(state.Activity),
		Yearly:  activity.YearlyView(state.Activity),
		Summary: activity.Summarize(state.Activity),
	}
}
