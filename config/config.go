package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	// Comma-separated list of emails granted admin permission.
	ADMIN_EMAILS []string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	OSS_ENDPOINT    string
	OSS_ACCESS_KEY  string
	OSS_SECRET_KEY  string
	OSS_BUCKET      string
	OSS_PUBLIC_BASE string

	// Reference time zone for reveal eligibility (date-only comparisons).
	TIMEZONE *time.Location
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	ADMIN_EMAILS = splitList(getEnv("ADMIN_EMAILS", ""))

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	OSS_ENDPOINT = mustEnv("OSS_ENDPOINT")
	OSS_ACCESS_KEY = mustEnv("OSS_ACCESS_KEY")
	OSS_SECRET_KEY = mustEnv("OSS_SECRET_KEY")
	OSS_BUCKET = mustEnv("OSS_BUCKET")
	OSS_PUBLIC_BASE = getEnv("OSS_PUBLIC_BASE", "")

	tz := getEnv("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", tz, err)
	}
	TIMEZONE = loc
}

func IsAdminEmail(email string) bool {
	for _, e := range ADMIN_EMAILS {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
