package calendar

import "time"

// ScheduledDate is the reveal date of a day's picture: December `day` of the
// calendar's year, at midnight in the reference time zone.
func ScheduledDate(year, day int, loc *time.Location) time.Time {
	return time.Date(year, time.December, day, 0, 0, 0, 0, loc)
}

// RevealEligible reports whether `now` is on or after the calendar day of
// `scheduled`. The comparison is date-only: a picture scheduled for day D is
// eligible from midnight of D (inclusive), time of day ignored.
func RevealEligible(scheduled, now time.Time) bool {
	now = now.In(scheduled.Location())
	sy, sm, sd := scheduled.Date()
	ny, nm, nd := now.Date()
	if ny != sy {
		return ny > sy
	}
	if nm != sm {
		return nm > sm
	}
	return nd >= sd
}

// RevealDueToday reports whether `now` and `scheduled` fall on the same
// calendar day. Presentation only, no authorization weight.
func RevealDueToday(scheduled, now time.Time) bool {
	now = now.In(scheduled.Location())
	sy, sm, sd := scheduled.Date()
	ny, nm, nd := now.Date()
	return sy == ny && sm == nm && sd == nd
}

// InAdventPeriod reports whether the reveal UI should be active at all:
// December 1 through 24. Gates navigation, not individual reveals.
func InAdventPeriod(now time.Time) bool {
	return now.Month() == time.December && now.Day() >= 1 && now.Day() <= MaxDays
}

// Archived reports whether a calendar year counts as archived: strictly
// before the current year. A current-year calendar is never archived, even
// after December 24.
func Archived(year int, now time.Time) bool {
	return year < now.Year()
}
