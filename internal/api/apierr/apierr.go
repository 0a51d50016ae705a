package apierr

import (
	"errors"
	"net/http"

	"advent-app/internal/domain/access"
	"advent-app/internal/domain/calendar"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Write maps a domain error to an HTTP response. Ownership mismatches and
// channel violations deliberately come out as 404 so the existence of other
// users' calendars is not leaked.
func Write(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, access.ErrAdminRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin permission required"})
	case errors.Is(err, access.ErrForbidden),
		errors.Is(err, calendar.ErrWrongChannel),
		errors.Is(err, calendar.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, calendar.ErrNotYetEligible):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, calendar.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
