package activity

import (
	"time"

	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/montanaflynn/stats"
)

// Summary condenses a series into headline numbers shown above the charts.
type Summary struct {
	TotalCommits     int        `json:"total_commits"`
	Weeks            int        `json:"weeks"`
	ActiveWeeks      int        `json:"active_weeks"`
	WeeklyMean       float64    `json:"weekly_mean"`
	WeeklyMedian     float64    `json:"weekly_median"`
	BusiestWeek      *time.Time `json:"busiest_week,omitempty"`
	BusiestWeekTotal int        `json:"busiest_week_total"`
	BusiestWeekday   string     `json:"busiest_weekday,omitempty"`
	NoData           bool       `json:"no_data"`
}

// Summarize computes totals over the whole series. Days are indexed from
// Sunday, as GitHub reports them.
func Summarize(series []models.CommitActivityWeek) Summary {
	if len(series) == 0 {
		return Summary{NoData: true}
	}

	totals := make(stats.Float64Data, len(series))
	var weekdays [models.DaysPerWeek]float64
	out := Summary{Weeks: len(series)}

	for i, w := range series {
		totals[i] = float64(w.Total)
		if w.Total > 0 {
			out.ActiveWeeks++
		}
		for d, count := range w.Days {
			weekdays[d] += float64(count)
		}
	}

	// input is non-empty, stats can't fail here
	sum, _ := totals.Sum()
	out.TotalCommits = int(sum)
	out.WeeklyMean, _ = totals.Mean()
	out.WeeklyMedian, _ = totals.Median()

	if out.TotalCommits == 0 {
		out.NoData = true
		return out
	}

	busiest, _ := totals.Max()
	for _, w := range series {
		if float64(w.Total) == busiest {
			start := w.Start()
			out.BusiestWeek = &start
			out.BusiestWeekTotal = w.Total
			break
		}
	}

	peak, _ := stats.Float64Data(weekdays[:]).Max()
	if peak > 0 {
		for d, count := range weekdays {
			if count == peak {
				out.BusiestWeekday = time.Weekday(d).String()
				break
			}
		}
	}

	return out
}
