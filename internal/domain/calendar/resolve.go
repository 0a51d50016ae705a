package calendar

import "time"

// ResolveDisplay picks which calendar to show: the one for the active year
// if present, otherwise the most recent one. Candidates must already be
// published, real-channel and visible to the requesting principal, ordered
// by year descending. Returns nil when there is nothing to show.
func ResolveDisplay(candidates []Calendar, now time.Time) *Calendar {
	activeYear := now.Year()
	for i := range candidates {
		if candidates[i].Year == activeYear {
			return &candidates[i]
		}
	}
	if len(candidates) > 0 {
		return &candidates[0]
	}
	return nil
}
