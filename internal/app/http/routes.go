package routes

import (
	authapi "advent-app/internal/api/auth"
	"advent-app/internal/api/calendars"
	demoapi "advent-app/internal/api/demo"
	"advent-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cal *calendars.Handler, demo *demoapi.Handler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public: sign-in plus the unauthenticated demo channel.
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/demo/calendar", demo.GetCalendar)
	public.POST("/demo/calendar/open/:day", demo.OpenDay)
	public.POST("/demo/calendar/reset", demo.Reset)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/calendars", cal.List)
	auth.GET("/current-calendar", cal.Current)
	auth.GET("/calendars/:id", cal.Get)
	auth.GET("/years/:year/calendar", cal.GetByYear)
	auth.POST("/calendars/:id/open/:day", cal.OpenDay)

	// Admin
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin(), middleware.SanitizeAndCleanInputMiddleware())
	admin.POST("/calendars", cal.Create)
	admin.POST("/years/:year/calendar", cal.CreateForYear)
	admin.PUT("/calendars/:id", cal.Update)
	admin.DELETE("/calendars/:id", cal.Delete)
	admin.POST("/calendars/:id/publish", cal.Publish)
	admin.POST("/calendars/:id/unpublish", cal.Unpublish)
	admin.POST("/calendars/:id/pictures", cal.AddPictures)
	admin.DELETE("/pictures/:id", cal.DeletePicture)
	admin.POST("/calendars/:id/reset", cal.Reset)
	admin.POST("/calendars/:id/duplicate", cal.Duplicate)
}
