package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/railbooking/internal/domain"
)

// respondError maps domain errors onto HTTP statuses. Business rejections
// keep their message; anything unrecognized is a 500 with the detail kept
// out of the response body.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNoSeatsAvailable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidLogin):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTrainNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTrainExists),
		errors.Is(err, domain.ErrDuplicateBooking),
		errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
