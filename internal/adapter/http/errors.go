package http

import (
	"errors"
	"net/http"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// statusFor maps usecase errors onto client-facing status codes. Not-found
// covers foreign resources too, so nothing leaks about other users.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidShipping),
		errors.Is(err, usecase.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrItemNotFound),
		errors.Is(err, usecase.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPaymentProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		// storage details stay in the logs
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
