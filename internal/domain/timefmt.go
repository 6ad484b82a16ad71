package domain

import (
	"fmt"
	"time"
)

// FormatPostTime renders a post's age relative to now: "just now" under a
// minute, whole elapsed minutes up to an hour, then an absolute date/time
// label.
func FormatPostTime(createdAt, now time.Time) string {
	minutes := int(now.Sub(createdAt).Minutes())
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	return createdAt.In(now.Location()).Format("Jan 2 15:04")
}
