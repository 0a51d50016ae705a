package demo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"advent-app/database"

	"advent-app/internal/domain/calendar"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	h := NewHandler(db, time.UTC)
	h.now = func() time.Time { return time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC) }
	return h, db
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/demo/calendar", h.GetCalendar)
	r.POST("/demo/calendar/open/:day", h.OpenDay)
	r.POST("/demo/calendar/reset", h.Reset)
	return r
}

func seedDemo(t *testing.T, db *gorm.DB, days int) calendar.Calendar {
	t.Helper()
	cal := calendar.Calendar{
		Year:        2023,
		Title:       "Try it out",
		Channel:     calendar.ChannelTest,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&cal).Error)
	for d := 1; d <= days; d++ {
		require.NoError(t, db.Create(&calendar.Picture{
			CalendarID: cal.ID,
			Day:        d,
			// demo pictures carry literal URLs, not object keys
			ObjectKey: fmt.Sprintf("https://images.example/demo/%d.jpg", d),
		}).Error)
	}
	return cal
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDemoSimulatedDate(t *testing.T) {
	h, db := newTestHandler(t)
	seedDemo(t, db, 24)
	r := newRouter(h)

	w := do(r, "GET", "/demo/calendar?date=2023-12-10")
	require.Equal(t, http.StatusOK, w.Code)

	var dto CalendarDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	require.Len(t, dto.Pictures, 24)
	assert.True(t, dto.AdventPeriod)

	for _, p := range dto.Pictures {
		assert.Equal(t, p.Day <= 10, p.Eligible, "day %d", p.Day)
		assert.Equal(t, p.Day == 10, p.DueToday, "day %d", p.Day)
		assert.Empty(t, p.URL, "unopened day %d must not expose its image", p.Day)
	}
}

func TestDemoMalformedDate(t *testing.T) {
	h, db := newTestHandler(t)
	seedDemo(t, db, 24)
	r := newRouter(h)

	w := do(r, "GET", "/demo/calendar?date=12-10-2023")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")

	assert.Equal(t, http.StatusBadRequest, do(r, "POST", "/demo/calendar/open/3?date=notadate").Code)

	var n int64
	require.NoError(t, db.Model(&calendar.Picture{}).
		Where("opened = ?", true).
		Count(&n).Error)
	assert.Zero(t, n)
}

func TestDemoOpenAndReset(t *testing.T) {
	h, db := newTestHandler(t)
	cal := seedDemo(t, db, 24)
	r := newRouter(h)

	w := do(r, "POST", "/demo/calendar/open/3?date=2023-12-10")
	require.Equal(t, http.StatusOK, w.Code)

	var pic PictureDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pic))
	assert.True(t, pic.Opened)
	assert.Equal(t, "https://images.example/demo/3.jpg", pic.URL)

	// idempotent
	w = do(r, "POST", "/demo/calendar/open/3?date=2023-12-10")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, "POST", "/demo/calendar/reset")
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, db.Model(&calendar.Picture{}).
		Where("calendar_id = ? AND opened = ?", cal.ID, true).
		Count(&n).Error)
	assert.Zero(t, n)
}

func TestDemoMissing(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newRouter(h)

	assert.Equal(t, http.StatusNotFound, do(r, "GET", "/demo/calendar").Code)
	assert.Equal(t, http.StatusNotFound, do(r, "POST", "/demo/calendar/open/1").Code)
	assert.Equal(t, http.StatusNotFound, do(r, "POST", "/demo/calendar/reset").Code)
}

func TestDemoOpenUnknownDay(t *testing.T) {
	h, db := newTestHandler(t)
	seedDemo(t, db, 5)
	r := newRouter(h)

	assert.Equal(t, http.StatusNotFound, do(r, "POST", "/demo/calendar/open/20").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "POST", "/demo/calendar/open/xx").Code)
}
