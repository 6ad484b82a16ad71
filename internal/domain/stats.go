package domain

import "time"

// ComputeStats aggregates posting counts over the given posts relative to
// now. Month is a calendar month+year bucket, not a rolling 30 days; Week
// is a rolling 7-day window, not a calendar week. The aggregation is a full
// recompute over the current snapshot, O(n) in feed size.
func ComputeStats(myPosts []Post, now time.Time) Stats {
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var s Stats
	for _, p := range myPosts {
		s.Total++
		// Bucket in now's location; server timestamps arrive in UTC and
		// would otherwise flip month near local boundaries.
		created := p.CreatedAt.In(now.Location())
		if created.Month() == now.Month() && created.Year() == now.Year() {
			s.Month++
		}
		if !p.CreatedAt.Before(weekAgo) {
			s.Week++
		}
	}
	return s
}
