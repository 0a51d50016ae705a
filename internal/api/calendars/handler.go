package calendars

import (
	"net/http"
	"strconv"
	"time"

	"advent-app/internal/api/apierr"
	"advent-app/internal/app/http/middleware"
	"advent-app/internal/domain/access"
	"advent-app/internal/domain/calendar"
	"advent-app/internal/infra/blob"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db    *gorm.DB
	blobs blob.Store
	loc   *time.Location
	now   func() time.Time
}

func NewHandler(db *gorm.DB, blobs blob.Store, loc *time.Location) *Handler {
	return &Handler{db: db, blobs: blobs, loc: loc, now: time.Now}
}

func mustPrincipal(c *gin.Context) (access.Principal, bool) {
	p, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return access.Principal{}, false
	}
	return p, true
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// ------------------------------
// GET /calendars?archived=&published=
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	now := h.now()

	q := visibleCalendarsQuery(h.db, p)
	archivedFilter := c.Query("archived")
	if archivedFilter == "true" {
		q = q.Where("year < ?", now.Year())
	} else if archivedFilter == "false" {
		q = q.Where("year >= ?", now.Year())
	}
	if published := c.Query("published"); published != "" {
		q = q.Where("is_published = ?", published == "true")
	}

	var cals []calendar.Calendar
	if err := q.Order("year DESC, id DESC").Find(&cals).Error; err != nil {
		// The archive listing deliberately degrades to an empty page
		// instead of failing the request.
		if archivedFilter == "true" {
			c.JSON(http.StatusOK, []CalendarSummaryDTO{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendars"})
		return
	}

	out := make([]CalendarSummaryDTO, 0, len(cals))
	for _, cal := range cals {
		out = append(out, toSummaryDTO(cal, now))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /current-calendar
// ------------------------------
// Picks the published calendar for the active year, falling back to the
// most recent published one the principal may see.
func (h *Handler) Current(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	now := h.now()

	var cands []calendar.Calendar
	err := visibleCalendarsQuery(h.db, p).
		Where("is_published = ?", true).
		Order("year DESC, id DESC").
		Find(&cands).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendars"})
		return
	}

	cal := calendar.ResolveDisplay(cands, now)
	if cal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No calendar to display"})
		return
	}

	if err := h.db.Preload("Pictures", func(db *gorm.DB) *gorm.DB {
		return db.Order("day ASC")
	}).First(cal, "id = ?", cal.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendar"})
		return
	}

	c.JSON(http.StatusOK, h.toCalendarDTO(*cal, now))
}

// ------------------------------
// GET /calendars/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var cal calendar.Calendar
	err := h.db.Preload("Pictures", func(db *gorm.DB) *gorm.DB {
		return db.Order("day ASC")
	}).First(&cal, "id = ? AND channel = ?", id, calendar.ChannelReal).Error
	if err != nil {
		apierr.Write(c, err, "Failed to load calendar")
		return
	}

	if err := access.AuthorizeView(p, cal); err != nil {
		apierr.Write(c, err, "Failed to load calendar")
		return
	}

	c.JSON(http.StatusOK, h.toCalendarDTO(cal, h.now()))
}

// ------------------------------
// GET /years/:year/calendar (legacy year-keyed lookup)
// ------------------------------
func (h *Handler) GetByYear(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	// Year is a secondary, non-unique key; the latest calendar wins.
	var cal calendar.Calendar
	err = h.db.Preload("Pictures", func(db *gorm.DB) *gorm.DB {
		return db.Order("day ASC")
	}).Where("year = ? AND channel = ?", year, calendar.ChannelReal).
		Order("id DESC").
		First(&cal).Error
	if err != nil {
		apierr.Write(c, err, "Failed to load calendar")
		return
	}

	if err := access.AuthorizeView(p, cal); err != nil {
		apierr.Write(c, err, "Failed to load calendar")
		return
	}

	c.JSON(http.StatusOK, h.toCalendarDTO(cal, h.now()))
}

// ------------------------------
// POST /calendars (admin, multipart)
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	h.create(c, false)
}

// ------------------------------
// POST /years/:year/calendar (admin, legacy creation path)
// ------------------------------
// The only path that still enforces one calendar per year.
func (h *Handler) CreateForYear(c *gin.Context) {
	h.create(c, true)
}

// ------------------------------
// PUT /calendars/:id (admin)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req UpdateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := realCalendarByID(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.AssigneeSub != nil {
			if *req.AssigneeSub == "" {
				updates["assignee_sub"] = nil
			} else {
				updates["assignee_sub"] = *req.AssigneeSub
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&calendar.Calendar{}).Where("id = ?", cal.ID).Updates(updates).Error
	})
	if err != nil {
		apierr.Write(c, err, "Failed to update calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// POST /calendars/:id/publish (admin)
// ------------------------------
func (h *Handler) Publish(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := realCalendarByID(tx, id)
		if err != nil {
			return err
		}

		n, err := pictureCount(tx, cal.ID)
		if err != nil {
			return err
		}
		if err := calendar.ValidatePublish(int(n)); err != nil {
			return err
		}

		return tx.Model(&calendar.Calendar{}).
			Where("id = ?", cal.ID).
			Update("is_published", true).Error
	})
	if err != nil {
		apierr.Write(c, err, "Failed to publish calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "published"})
}

// ------------------------------
// POST /calendars/:id/unpublish (admin)
// ------------------------------
func (h *Handler) Unpublish(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := realCalendarByID(tx, id)
		if err != nil {
			return err
		}
		return tx.Model(&calendar.Calendar{}).
			Where("id = ?", cal.ID).
			Update("is_published", false).Error
	})
	if err != nil {
		apierr.Write(c, err, "Failed to unpublish calendar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unpublished"})
}

// ------------------------------
// DELETE /calendars/:id (admin)
// ------------------------------
// Deletes the calendar and its pictures in one transaction; the backing
// blobs are removed best-effort afterwards and failures only get logged.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var keys []string
	err := h.db.Transaction(func(tx *gorm.DB) error {
		cal, err := realCalendarByID(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Model(&calendar.Picture{}).
			Where("calendar_id = ?", cal.ID).
			Pluck("object_key", &keys).Error; err != nil {
			return err
		}
		if cal.CoverKey != nil {
			keys = append(keys, *cal.CoverKey)
		}

		if err := tx.Delete(&calendar.Picture{}, "calendar_id = ?", cal.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&calendar.Calendar{}, "id = ?", cal.ID).Error
	})
	if err != nil {
		apierr.Write(c, err, "Failed to delete calendar")
		return
	}

	h.cleanupBlobs(c, keys)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
