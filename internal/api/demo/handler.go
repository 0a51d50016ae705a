package demo

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"advent-app/internal/domain/calendar"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The demo calendar is a public sandbox: a test-channel calendar served
// without authentication, whose pictures carry literal externally-hosted
// URLs instead of signed object keys. A `date` query parameter simulates
// the reference date so reveals can be tried outside December.
type Handler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewHandler(db *gorm.DB, loc *time.Location) *Handler {
	return &Handler{db: db, loc: loc, now: time.Now}
}

type PictureDTO struct {
	Day      int    `json:"day"`
	Opened   bool   `json:"opened"`
	Eligible bool   `json:"eligible"`
	DueToday bool   `json:"due_today"`
	URL      string `json:"url,omitempty"`
}

type CalendarDTO struct {
	Year         int          `json:"year"`
	Title        string       `json:"title"`
	AdventPeriod bool         `json:"advent_period"`
	Pictures     []PictureDTO `json:"pictures"`
}

// refDate resolves the simulated reference date. A missing `date` parameter
// means the real clock; a malformed one is a client error, not a silent
// fallback.
func (h *Handler) refDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return h.now(), true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *Handler) demoCalendar(tx *gorm.DB) (calendar.Calendar, error) {
	var cal calendar.Calendar
	err := tx.Preload("Pictures", func(db *gorm.DB) *gorm.DB {
		return db.Order("day ASC")
	}).Where("channel = ?", calendar.ChannelTest).
		Order("id ASC").
		First(&cal).Error
	return cal, err
}

// ------------------------------
// GET /demo/calendar?date=YYYY-MM-DD
// ------------------------------
func (h *Handler) GetCalendar(c *gin.Context) {
	now, ok := h.refDate(c)
	if !ok {
		return
	}

	cal, err := h.demoCalendar(h.db)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No demo calendar"})
		return
	}
	out := CalendarDTO{
		Year:         cal.Year,
		Title:        cal.Title,
		AdventPeriod: calendar.InAdventPeriod(now),
		Pictures:     make([]PictureDTO, 0, len(cal.Pictures)),
	}
	for _, p := range cal.Pictures {
		scheduled := calendar.ScheduledDate(cal.Year, p.Day, h.loc)
		dto := PictureDTO{
			Day:      p.Day,
			Opened:   p.Opened,
			Eligible: calendar.RevealEligible(scheduled, now),
			DueToday: calendar.RevealDueToday(scheduled, now),
		}
		if p.Opened {
			// Test-channel keys are literal URLs, no signing.
			dto.URL = p.ObjectKey
		}
		out.Pictures = append(out.Pictures, dto)
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /demo/calendar/open/:day
// ------------------------------
func (h *Handler) OpenDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
		return
	}

	now, ok := h.refDate(c)
	if !ok {
		return
	}
	var cal calendar.Calendar
	var pic calendar.Picture
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cal, err = h.demoCalendar(tx)
		if err != nil {
			return err
		}
		if err := tx.First(&pic, "calendar_id = ? AND day = ?", cal.ID, day).Error; err != nil {
			return err
		}
		if pic.Opened {
			return nil
		}
		if err := tx.Model(&calendar.Picture{}).
			Where("id = ?", pic.ID).
			Update("opened", true).Error; err != nil {
			return err
		}
		pic.Opened = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open picture"})
		return
	}

	scheduled := calendar.ScheduledDate(cal.Year, pic.Day, h.loc)
	c.JSON(http.StatusOK, PictureDTO{
		Day:      pic.Day,
		Opened:   pic.Opened,
		Eligible: calendar.RevealEligible(scheduled, now),
		DueToday: calendar.RevealDueToday(scheduled, now),
		URL:      pic.ObjectKey,
	})
}

// ------------------------------
// POST /demo/calendar/reset
// ------------------------------
func (h *Handler) Reset(c *gin.Context) {
	err := h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := h.demoCalendar(tx)
		if err != nil {
			return err
		}
		return tx.Model(&calendar.Picture{}).
			Where("calendar_id = ?", cal.ID).
			Update("opened", false).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No demo calendar"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
