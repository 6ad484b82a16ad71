package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsBuckets(t *testing.T) {
	// Mid-month reference so the 10-day-old post stays in the calendar
	// month and the 40-day-old one does not.
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	posts := []Post{
		{CreatedAt: now},
		{CreatedAt: now.AddDate(0, 0, -3)},
		{CreatedAt: now.AddDate(0, 0, -10)},
		{CreatedAt: now.AddDate(0, 0, -40)},
	}

	got := ComputeStats(posts, now)

	assert.Equal(t, Stats{Total: 4, Month: 3, Week: 2}, got)
}

func TestComputeStatsMonthIsCalendarBucket(t *testing.T) {
	// Two days into a month, a 5-day-old post is inside the rolling week
	// but outside the calendar month.
	now := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
	posts := []Post{
		{CreatedAt: now.AddDate(0, 0, -5)},
	}

	got := ComputeStats(posts, now)

	assert.Equal(t, Stats{Total: 1, Month: 0, Week: 1}, got)
}

func TestComputeStatsSameMonthLastYearExcluded(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	posts := []Post{
		{CreatedAt: now.AddDate(-1, 0, 0)},
	}

	got := ComputeStats(posts, now)

	assert.Equal(t, Stats{Total: 1, Month: 0, Week: 0}, got)
}

func TestComputeStatsBucketsInReferenceLocation(t *testing.T) {
	// 16:00 UTC on May 31 is already June 1 in UTC+9; the month bucket
	// follows the reference clock, not the server's UTC timestamp.
	jst := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, jst)
	posts := []Post{
		{CreatedAt: time.Date(2025, time.May, 31, 16, 0, 0, 0, time.UTC)},
	}

	got := ComputeStats(posts, now)

	assert.Equal(t, Stats{Total: 1, Month: 1, Week: 1}, got)
}

func TestComputeStatsIdempotent(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	posts := []Post{
		{CreatedAt: now},
		{CreatedAt: now.AddDate(0, 0, -20)},
	}

	first := ComputeStats(posts, now)
	second := ComputeStats(posts, now)

	assert.Equal(t, first, second)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil, time.Now()))
}
