package calendars

import (
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"advent-app/internal/api/apierr"
	"advent-app/internal/domain/access"
	"advent-app/internal/domain/calendar"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type dayUpload struct {
	day  int
	file *multipart.FileHeader
}

// collectDayUploads reads the day_N file fields out of a multipart form.
func collectDayUploads(form *multipart.Form) ([]dayUpload, error) {
	var uploads []dayUpload
	for key, fhs := range form.File {
		if !strings.HasPrefix(key, dayFieldPrefix) || len(fhs) == 0 {
			continue
		}
		day, err := strconv.Atoi(strings.TrimPrefix(key, dayFieldPrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid file field %q", calendar.ErrValidation, key)
		}
		uploads = append(uploads, dayUpload{day: day, file: fhs[0]})
	}
	sort.Slice(uploads, func(i, j int) bool { return uploads[i].day < uploads[j].day })
	return uploads, nil
}

func uploadContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (h *Handler) uploadPicture(c *gin.Context, key string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return h.blobs.Put(c.Request.Context(), key, src, uploadContentType(fh))
}

func (h *Handler) cleanupBlobs(c *gin.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := h.blobs.DeleteMany(c.Request.Context(), keys); err != nil {
		log.Printf("blob cleanup failed for %d keys: %v", len(keys), err)
	}
}

// create backs both creation routes. The relational insert is a single
// transaction; blob uploads are best-effort per item, so an upload failure
// rolls the rows back but may leave orphaned objects behind (logged).
func (h *Handler) create(c *gin.Context, legacyYearKeyed bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title"})
		return
	}

	var year int
	if legacyYearKeyed {
		year, err = strconv.Atoi(c.Param("year"))
	} else {
		year, err = strconv.Atoi(c.PostForm("year"))
	}
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	var description *string
	if d := c.PostForm("description"); d != "" {
		description = &d
	}

	uploads, err := collectDayUploads(form)
	if err != nil {
		apierr.Write(c, err, "Failed to read upload")
		return
	}
	days := make([]int, 0, len(uploads))
	for _, u := range uploads {
		days = append(days, u.day)
	}
	if err := calendar.ValidateDayAssignment(days, nil); err != nil {
		apierr.Write(c, err, "Failed to create calendar")
		return
	}

	var uploaded []string
	var created calendar.Calendar
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if legacyYearKeyed {
			var n int64
			if err := realCalendarsQuery(tx).Where("year = ?", year).Count(&n).Error; err != nil {
				return err
			}
			if err := calendar.ValidateYearUnique(year, n > 0); err != nil {
				return err
			}
		}

		created = calendar.Calendar{
			Year:        year,
			Title:       title,
			Description: description,
			Channel:     calendar.ChannelReal,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for _, u := range uploads {
			key := calendar.ObjectKey(year, created.ID, u.day, u.file.Filename)
			if err := h.uploadPicture(c, key, u.file); err != nil {
				return err
			}
			uploaded = append(uploaded, key)

			pic := calendar.Picture{CalendarID: created.ID, Day: u.day, ObjectKey: key}
			if err := tx.Create(&pic).Error; err != nil {
				return err
			}
		}

		if fhs := form.File["cover"]; len(fhs) > 0 {
			key := calendar.CoverObjectKey(year, created.ID, fhs[0].Filename)
			if err := h.uploadPicture(c, key, fhs[0]); err != nil {
				return err
			}
			uploaded = append(uploaded, key)
			if err := tx.Model(&calendar.Calendar{}).
				Where("id = ?", created.ID).
				Update("cover_key", key).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if len(uploaded) > 0 {
			log.Printf("calendar create rolled back, %d uploaded blobs left behind", len(uploaded))
		}
		apierr.Write(c, err, "Failed to create calendar")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// ------------------------------
// POST /calendars/:id/pictures (admin, multipart)
// ------------------------------
func (h *Handler) AddPictures(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected multipart form"})
		return
	}
	uploads, err := collectDayUploads(form)
	if err != nil {
		apierr.Write(c, err, "Failed to read upload")
		return
	}
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No day_N files in request"})
		return
	}

	var uploaded []string
	err = h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := realCalendarByID(tx, id)
		if err != nil {
			return err
		}

		taken, err := pictureDays(tx, cal.ID)
		if err != nil {
			return err
		}
		days := make([]int, 0, len(uploads))
		for _, u := range uploads {
			days = append(days, u.day)
		}
		if err := calendar.ValidateDayAssignment(days, taken); err != nil {
			return err
		}

		for _, u := range uploads {
			key := calendar.ObjectKey(cal.Year, cal.ID, u.day, u.file.Filename)
			if err := h.uploadPicture(c, key, u.file); err != nil {
				return err
			}
			uploaded = append(uploaded, key)

			pic := calendar.Picture{CalendarID: cal.ID, Day: u.day, ObjectKey: key}
			if err := tx.Create(&pic).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if len(uploaded) > 0 {
			log.Printf("picture add rolled back, %d uploaded blobs left behind", len(uploaded))
		}
		apierr.Write(c, err, "Failed to add pictures")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /pictures/:id (admin)
// ------------------------------
func (h *Handler) DeletePicture(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var key string
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var pic calendar.Picture
		if err := tx.First(&pic, "id = ?", id).Error; err != nil {
			return err
		}
		cal, err := realCalendarByID(tx, pic.CalendarID)
		if err != nil {
			return err
		}
		// A published calendar always carries the full set of pictures;
		// it must be unpublished before any can be removed.
		if cal.IsPublished {
			return fmt.Errorf("%w: calendar is published, unpublish before removing pictures", calendar.ErrValidation)
		}
		key = pic.ObjectKey
		return tx.Delete(&calendar.Picture{}, "id = ?", pic.ID).Error
	})
	if err != nil {
		apierr.Write(c, err, "Failed to delete picture")
		return
	}

	if err := h.blobs.Delete(c.Request.Context(), key); err != nil {
		log.Printf("blob delete failed for %s: %v", key, err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// POST /calendars/:id/open/:day
// ------------------------------
// Opening is one-way and idempotent: a second open returns the picture
// unchanged. Non-admin principals are additionally held to the temporal
// gate server-side; admins may preview ahead of schedule.
func (h *Handler) OpenDay(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
		return
	}

	now := h.now()
	var cal calendar.Calendar
	var pic calendar.Picture
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cal, err = realCalendarByID(tx, id)
		if err != nil {
			return err
		}
		if err := access.AuthorizeView(p, cal); err != nil {
			return err
		}

		if err := tx.First(&pic, "calendar_id = ? AND day = ?", cal.ID, day).Error; err != nil {
			return err
		}
		if pic.Opened {
			return nil
		}

		if !p.Admin {
			scheduled := calendar.ScheduledDate(cal.Year, pic.Day, h.loc)
			if !calendar.RevealEligible(scheduled, now) {
				return calendar.ErrNotYetEligible
			}
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
		apierr.Write(c, err, "Failed to open picture")
		return
	}

	c.JSON(http.StatusOK, h.toPictureDTO(cal, pic, now))
}

// ------------------------------
// POST /calendars/:id/reset (admin)
// ------------------------------
// Forces every picture of the calendar back to unopened.
func (h *Handler) Reset(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := realCalendarByID(tx, id)
		if err != nil {
			return err
		}
		return tx.Model(&calendar.Picture{}).
			Where("calendar_id = ?", cal.ID).
			Update("opened", false).Error
	})
	if err != nil {
		apierr.Write(c, err, "Failed to reset calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
