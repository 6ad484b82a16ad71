package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPostTime(t *testing.T) {
	now := time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      string
	}{
		{"same instant", now, "just now"},
		{"under a minute", now.Add(-45 * time.Second), "just now"},
		{"90 seconds", now.Add(-90 * time.Second), "1 minutes ago"},
		{"59 minutes", now.Add(-59 * time.Minute), "59 minutes ago"},
		{"one hour", now.Add(-time.Hour), "Jun 15 13:30"},
		{"two hours", now.Add(-2 * time.Hour), "Jun 15 12:30"},
		{"last month", now.AddDate(0, -1, 0), "May 15 14:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPostTime(tt.createdAt, now))
		})
	}
}

func TestFormatPostTimeAbsoluteLabelInReferenceLocation(t *testing.T) {
	// Server timestamps arrive in UTC; the absolute label reads on the
	// device clock.
	jst := time.FixedZone("JST", 9*60*60)
	createdAt := time.Date(2025, time.June, 15, 3, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 15, 14, 0, 0, 0, jst) // 05:00 UTC

	assert.Equal(t, "Jun 15 12:00", FormatPostTime(createdAt, now))
}
