package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealEligible(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	scheduled := ScheduledDate(2023, 10, loc)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"day before, late evening", time.Date(2023, 12, 9, 23, 59, 59, 0, loc), false},
		{"exactly midnight of the day", time.Date(2023, 12, 10, 0, 0, 0, 0, loc), true},
		{"same day, morning", time.Date(2023, 12, 10, 8, 30, 0, 0, loc), true},
		{"day after", time.Date(2023, 12, 11, 0, 0, 0, 0, loc), true},
		{"next year, earlier month", time.Date(2024, 1, 2, 0, 0, 0, 0, loc), true},
		{"previous year, later month", time.Date(2022, 12, 24, 0, 0, 0, 0, loc), false},
		{"november same year", time.Date(2023, 11, 30, 12, 0, 0, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RevealEligible(scheduled, tt.now))
		})
	}
}

func TestRevealEligibleIgnoresTimeZoneOfNow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	scheduled := ScheduledDate(2023, 10, loc)

	// 23:30 UTC on Dec 9 is already Dec 10 in Paris.
	now := time.Date(2023, 12, 9, 23, 30, 0, 0, time.UTC)
	assert.True(t, RevealEligible(scheduled, now))
}

func TestRevealDueToday(t *testing.T) {
	scheduled := ScheduledDate(2023, 5, time.UTC)

	assert.True(t, RevealDueToday(scheduled, time.Date(2023, 12, 5, 18, 0, 0, 0, time.UTC)))
	assert.False(t, RevealDueToday(scheduled, time.Date(2023, 12, 6, 0, 0, 0, 0, time.UTC)))
	assert.False(t, RevealDueToday(scheduled, time.Date(2023, 12, 4, 23, 59, 0, 0, time.UTC)))
}

func TestInAdventPeriod(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"december 1st", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), true},
		{"december 24th", time.Date(2023, 12, 24, 23, 59, 0, 0, time.UTC), true},
		{"december 25th", time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), false},
		{"november 30th", time.Date(2023, 11, 30, 12, 0, 0, 0, time.UTC), false},
		{"mid july", time.Date(2023, 7, 14, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InAdventPeriod(tt.now))
		})
	}
}

func TestArchived(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, Archived(2023, now))
	assert.False(t, Archived(2024, now))
	assert.False(t, Archived(2025, now))

	// A current-year calendar is not archived even after December 24.
	assert.False(t, Archived(2024, time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)))
}

func TestScheduledDate(t *testing.T) {
	d := ScheduledDate(2023, 7, time.UTC)
	assert.Equal(t, time.Date(2023, 12, 7, 0, 0, 0, 0, time.UTC), d)
}
