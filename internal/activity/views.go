// Package activity turns a commit-activity series into the projections the
// dashboard draws: weekly bars, monthly bars and a daily heat map.
// Every function here is pure.
package activity

import (
	"fmt"
	"sort"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/internal/models"
)

const (
	WeeklyWindow  = 12
	MonthlyWindow = 12
	YearlyWeeks   = 52

	NoDataMessage = "No commit activity found"

	secondsPerDay = 86400
)

// Bar is one column of a bar chart. Height is a percentage of the tallest bar.
type Bar struct {
	Label  string    `json:"label"`
	Start  time.Time `json:"start"`
	Value  int       `json:"value"`
	Height float64   `json:"height"`
}

// View is a scaled bar chart. When NoData is set Bars is empty and Message
// explains why.
type View struct {
	Granularity string `json:"granularity"`
	Bars        []Bar  `json:"bars"`
	Max         int    `json:"max"`
	NoData      bool   `json:"no_data"`
	Message     string `json:"message,omitempty"`
}

// Day is one cell of the heat map. Intensity lies in [0, 1].
type Day struct {
	Date      time.Time `json:"date"`
	Count     int       `json:"count"`
	Intensity float64   `json:"intensity"`
}

// HeatMap holds seven days per expanded week, oldest first.
type HeatMap struct {
	Days    []Day  `json:"days"`
	Max     int    `json:"max"`
	NoData  bool   `json:"no_data"`
	Message string `json:"message,omitempty"`
}

// Weeks splits the heat map into columns of seven days.
func (h HeatMap) Weeks() [][]Day {
	var cols [][]Day
	for i := 0; i < len(h.Days); i += models.DaysPerWeek {
		end := min(i+models.DaysPerWeek, len(h.Days))
		cols = append(cols, h.Days[i:end])
	}
	return cols
}

// WeeklyView charts the last twelve weeks, labelled month/day.
func WeeklyView(series []models.CommitActivityWeek) View {
	if len(series) == 0 {
		return noData("weekly")
	}

	recent := tail(series, WeeklyWindow)
	bars := make([]Bar, len(recent))
	for i, w := range recent {
		start := w.Start()
		bars[i] = Bar{
			Label: fmt.Sprintf("%d/%d", int(start.Month()), start.Day()),
			Start: start,
			Value: w.Total,
		}
	}

	return scaled("weekly", bars)
}

// MonthlyView sums the whole series per calendar month of the week start and
// charts the last twelve months.
func MonthlyView(series []models.CommitActivityWeek) View {
	if len(series) == 0 {
		return noData("monthly")
	}

	totals := make(map[time.Time]int)
	for _, w := range series {
		start := w.Start()
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += w.Total
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	months = tail(months, MonthlyWindow)

	bars := make([]Bar, len(months))
	for i, m := range months {
		bars[i] = Bar{
			Label: m.Format("Jan 2006"),
			Start: m,
			Value: totals[m],
		}
	}

	return scaled("monthly", bars)
}

// YearlyView expands the last 52 weeks into days for the heat map. A series
// without a single commit counts as no data.
func YearlyView(series []models.CommitActivityWeek) HeatMap {
	recent := tail(series, YearlyWeeks)

	days := make([]Day, 0, len(recent)*models.DaysPerWeek)
	maxCount := 0
	for _, w := range recent {
		for d, count := range w.Days {
			days = append(days, Day{
				Date:  time.Unix(w.WeekStart+int64(d)*secondsPerDay, 0).UTC(),
				Count: count,
			})
			maxCount = max(maxCount, count)
		}
	}

	if len(days) == 0 || maxCount == 0 {
		return HeatMap{NoData: true, Message: NoDataMessage}
	}

	for i := range days {
		days[i].Intensity = float64(days[i].Count) / float64(maxCount)
	}

	return HeatMap{Days: days, Max: maxCount}
}

func scaled(granularity string, bars []Bar) View {
	maxValue := 0
	for _, b := range bars {
		maxValue = max(maxValue, b.Value)
	}

	denom := float64(max(maxValue, 1))
	for i := range bars {
		bars[i].Height = float64(bars[i].Value) * 100 / denom
	}

	return View{Granularity: granularity, Bars: bars, Max: maxValue}
}

func noData(granularity string) View {
	return View{Granularity: granularity, NoData: true, Message: NoDataMessage}
}

func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
