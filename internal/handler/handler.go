package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"complaint-service/internal/service"
)

// httpStatus maps the core's typed errors onto response codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrDuplicateFeedback),
		errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidReference):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

// Health check endpoint for service status monitoring.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
