package calendars

import (
	"errors"

	"advent-app/internal/domain/access"
	"advent-app/internal/domain/calendar"

	"gorm.io/gorm"
)

func realCalendarsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&calendar.Calendar{}).
		Where("channel = ?", calendar.ChannelReal)
}

// visibleCalendarsQuery scopes the listing to what the principal may see:
// admins get every real calendar, everyone else only calendars assigned to
// them. Unassigned calendars are admin-only.
func visibleCalendarsQuery(db *gorm.DB, p access.Principal) *gorm.DB {
	q := realCalendarsQuery(db)
	if p.Admin {
		return q
	}
	return q.Where("assignee_sub = ?", p.Sub)
}

// realCalendarByID loads a calendar through the real channel. An ID that
// only exists on the test channel is a channel violation, not a miss.
func realCalendarByID(tx *gorm.DB, id uint) (calendar.Calendar, error) {
	var cal calendar.Calendar
	err := tx.First(&cal, "id = ? AND channel = ?", id, calendar.ChannelReal).Error
	if err == nil {
		return cal, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var n int64
		if cerr := tx.Model(&calendar.Calendar{}).Where("id = ?", id).Count(&n).Error; cerr == nil && n > 0 {
			return cal, calendar.ErrWrongChannel
		}
	}
	return cal, err
}

func pictureDays(tx *gorm.DB, calendarID uint) ([]int, error) {
	var days []int
	err := tx.Model(&calendar.Picture{}).
		Where("calendar_id = ?", calendarID).
		Order("day ASC").
		Pluck("day", &days).Error
	return days, err
}

func pictureCount(tx *gorm.DB, calendarID uint) (int64, error) {
	var n int64
	err := tx.Model(&calendar.Picture{}).
		Where("calendar_id = ?", calendarID).
		Count(&n).Error
	return n, err
}
