package calendars

import (
	"net/http"

	"advent-app/internal/api/apierr"
	"advent-app/internal/domain/calendar"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// POST /calendars/:id/duplicate (admin)
// ------------------------------
// Copies a calendar into a fresh one: same year, unassigned, unpublished,
// every picture cloned unopened onto new blob keys. A half-duplicated
// calendar is user-visible and confusing, so this is all-or-nothing: any
// failed blob copy rolls back the rows and removes the copies made so far.
func (h *Handler) Duplicate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var copied []string
	var dup calendar.Calendar
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var src calendar.Calendar
		if err := tx.Preload("Pictures", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC")
		}).First(&src, "id = ? AND channel = ?", id, calendar.ChannelReal).Error; err != nil {
			if _, werr := realCalendarByID(tx, id); werr != nil {
				return werr
			}
			return err
		}

		title := src.Title + " (copy)"
		dup = calendar.Calendar{
			Year:        src.Year,
			Title:       title,
			Description: src.Description,
			Channel:     calendar.ChannelReal,
		}
		if err := tx.Create(&dup).Error; err != nil {
			return err
		}

		if src.CoverKey != nil {
			newKey := calendar.CoverObjectKey(dup.Year, dup.ID, *src.CoverKey)
			if err := h.blobs.Copy(c.Request.Context(), *src.CoverKey, newKey); err != nil {
				return err
			}
			copied = append(copied, newKey)
			if err := tx.Model(&calendar.Calendar{}).
				Where("id = ?", dup.ID).
				Update("cover_key", newKey).Error; err != nil {
				return err
			}
		}

		for _, pic := range src.Pictures {
			newKey := calendar.ObjectKey(dup.Year, dup.ID, pic.Day, pic.ObjectKey)
			if err := h.blobs.Copy(c.Request.Context(), pic.ObjectKey, newKey); err != nil {
				return err
			}
			copied = append(copied, newKey)

			clone := calendar.Picture{
				CalendarID: dup.ID,
				Day:        pic.Day,
				ObjectKey:  newKey,
			}
			if err := tx.Create(&clone).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.cleanupBlobs(c, copied)
		apierr.Write(c, err, "Failed to duplicate calendar")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": dup.ID})
}
