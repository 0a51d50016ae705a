package calendar

import (
	"fmt"
	"path"
	"time"
)

// Channel separates the real, ownership-guarded calendars from the public
// demo calendar. The two never mix: accessors are channel-scoped and an ID
// reached through the wrong channel is treated as a channel violation.
type Channel string

const (
	ChannelReal Channel = "real"
	ChannelTest Channel = "test"
)

const MaxDays = 24

type Calendar struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Year        int     `gorm:"not null;index" json:"year"`
	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description,omitempty"`

	Channel Channel `gorm:"type:varchar(10);not null;default:'real';index" json:"-"`

	IsPublished bool `gorm:"not null;default:false" json:"is_published"`

	// Subject of the principal this calendar is assigned to. Nil means
	// unassigned, which is visible to admins only.
	AssigneeSub *string `gorm:"index" json:"-"`

	CoverKey *string `json:"-"`

	Pictures []Picture `gorm:"foreignKey:CalendarID;constraint:OnDelete:CASCADE;" json:"pictures,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Picture struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CalendarID uint `gorm:"not null;uniqueIndex:idx_pictures_calendar_day,priority:1" json:"calendar_id"`
	Day        int  `gorm:"not null;uniqueIndex:idx_pictures_calendar_day,priority:2" json:"day"`

	// Object-store key. Test-channel calendars store a literal external URL
	// here instead and skip signing.
	ObjectKey string `gorm:"not null" json:"-"`

	Opened bool `gorm:"not null;default:false" json:"opened"`

	CreatedAt time.Time `json:"created_at"`
}

// ObjectKey builds the blob key for a day's image. The relational row is
// authoritative over the key, never the reverse.
func ObjectKey(year int, calendarID uint, day int, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%d/%d/%d%s", year, calendarID, day, ext)
}

// CoverObjectKey is the blob key for a calendar's optional cover image.
func CoverObjectKey(year int, calendarID uint, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%d/%d/cover%s", year, calendarID, ext)
}
