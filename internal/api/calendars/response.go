package calendars

import (
	"log"
	"time"

	"advent-app/internal/domain/calendar"
)

const signTTL = time.Hour

type PictureDTO struct {
	ID       uint `json:"id"`
	Day      int  `json:"day"`
	Opened   bool `json:"opened"`
	Eligible bool `json:"eligible"`
	DueToday bool `json:"due_today"`

	// Signed, time-limited image URL. Present only once the picture has
	// been opened.
	URL string `json:"url,omitempty"`
}

type CalendarDTO struct {
	ID           uint         `json:"id"`
	Year         int          `json:"year"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	IsPublished  bool         `json:"is_published"`
	Archived     bool         `json:"archived"`
	AdventPeriod bool         `json:"advent_period"`
	CoverURL     string       `json:"cover_url,omitempty"`
	Pictures     []PictureDTO `json:"pictures,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type CalendarSummaryDTO struct {
	ID          uint      `json:"id"`
	Year        int       `json:"year"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"is_published"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handler) toPictureDTO(cal calendar.Calendar, p calendar.Picture, now time.Time) PictureDTO {
	scheduled := calendar.ScheduledDate(cal.Year, p.Day, h.loc)
	dto := PictureDTO{
		ID:       p.ID,
		Day:      p.Day,
		Opened:   p.Opened,
		Eligible: calendar.RevealEligible(scheduled, now),
		DueToday: calendar.RevealDueToday(scheduled, now),
	}
	if p.Opened {
		url, err := h.blobs.SignURL(p.ObjectKey, signTTL)
		if err != nil {
			log.Printf("sign url for %s: %v", p.ObjectKey, err)
		} else {
			dto.URL = url
		}
	}
	return dto
}

func (h *Handler) toCalendarDTO(cal calendar.Calendar, now time.Time) CalendarDTO {
	dto := CalendarDTO{
		ID:           cal.ID,
		Year:         cal.Year,
		Title:        cal.Title,
		Description:  cal.Description,
		IsPublished:  cal.IsPublished,
		Archived:     calendar.Archived(cal.Year, now),
		AdventPeriod: calendar.InAdventPeriod(now),
		CreatedAt:    cal.CreatedAt,
		UpdatedAt:    cal.UpdatedAt,
	}
	if cal.CoverKey != nil {
		url, err := h.blobs.SignURL(*cal.CoverKey, signTTL)
		if err != nil {
			log.Printf("sign url for %s: %v", *cal.CoverKey, err)
		} else {
			dto.CoverURL = url
		}
	}
	for _, p := range cal.Pictures {
		dto.Pictures = append(dto.Pictures, h.toPictureDTO(cal, p, now))
	}
	return dto
}

func toSummaryDTO(cal calendar.Calendar, now time.Time) CalendarSummaryDTO {
	return CalendarSummaryDTO{
		ID:          cal.ID,
		Year:        cal.Year,
		Title:       cal.Title,
		IsPublished: cal.IsPublished,
		Archived:    calendar.Archived(cal.Year, now),
		CreatedAt:   cal.CreatedAt,
	}
}
