package activity

import (
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	series := makeSeries(0, 6, 3, 9)

	s := Summarize(series)

	assert.False(t, s.NoData)
	assert.Equal(t, 18, s.TotalCommits)
	assert.Equal(t, 4, s.Weeks)
	assert.Equal(t, 3, s.ActiveWeeks)
	assert.InDelta(t, 4.5, s.WeeklyMean, 1e-9)
	assert.InDelta(t, 4.5, s.WeeklyMedian, 1e-9)
	require.NotNil(t, s.BusiestWeek)
	assert.Equal(t, series[3].Start(), *s.BusiestWeek)
	assert.Equal(t, 9, s.BusiestWeekTotal)
	// remainders land on Monday
	assert.Equal(t, time.Monday.String(), s.BusiestWeekday)
}

func TestSummarize_NoData(t *testing.T) {
	assert.True(t, Summarize(nil).NoData)

	s := Summarize(makeSeries(0, 0))
	assert.True(t, s.NoData)
	assert.Equal(t, 2, s.Weeks)
	assert.Nil(t, s.BusiestWeek)
}

func TestSummarize_BusiestWeekday(t *testing.T) {
	w := models.CommitActivityWeek{Total: 5, WeekStart: firstWeek}
	w.Days[5] = 4
	w.Days[0] = 1

	s := Summarize([]models.CommitActivityWeek{w})
	assert.Equal(t, "Friday", s.BusiestWeekday)
}
