package controllers

import (
	"errors"
	"net/http"

	"github.com/yeremiapane/rental-backoffice/services"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCleanerRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrBookingNotFound), errors.Is(err, services.ErrCleanerNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotCleaner):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrQueueEmpty), errors.Is(err, services.ErrCleanerBusy):
		return http.StatusConflict
	case errors.Is(err, services.ErrBoardUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
