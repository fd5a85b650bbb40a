package models

import "time"

const DaysPerWeek = 7

// * One week of the commit-activity series, oldest first in a series
type CommitActivityWeek struct {
	Total     int              `json:"total"`
	WeekStart int64            `json:"week"`
	Days      [DaysPerWeek]int `json:"days"`
}

// * Start returns the week start as a UTC time
func (w CommitActivityWeek) Start() time.Time {
	return time.Unix(w.WeekStart, 0).UTC()
}
