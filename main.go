package main

import (
	"log"
	"time"

	"advent-app/config"
	"advent-app/database"
	"advent-app/internal/api/calendars"
	demoapi "advent-app/internal/api/demo"
	routes "advent-app/internal/app/http"
	"advent-app/internal/infra/blob"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Open(config.DB_URL)
	if err != nil {
		log.Fatal(err)
	}

	blobs, err := blob.NewOSS(
		config.OSS_ENDPOINT,
		config.OSS_ACCESS_KEY,
		config.OSS_SECRET_KEY,
		config.OSS_BUCKET,
		config.OSS_PUBLIC_BASE,
	)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cal := calendars.NewHandler(db, blobs, config.TIMEZONE)
	demo := demoapi.NewHandler(db, config.TIMEZONE)
	routes.RegisterRoutes(r, cal, demo)

	r.Run(":" + config.PORT)
}
