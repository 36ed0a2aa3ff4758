// Package handlers is the thin HTTP glue: bind the request, call the
// service, map domain errors to status codes. No business rules live here.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/services/availability"
	"bookhive/services/booking"
	"bookhive/services/template"
	"bookhive/utils"
)

// HandlerBundle wires the route handlers to their services.
type HandlerBundle struct {
	Availability availability.AvailabilityService
	Templates    template.TemplateService
	Bookings     booking.BookingService
	Logger       *zap.Logger
}

// writeError translates a domain error into an HTTP response. Unrecognized
// errors are logged and hidden behind a generic 500.
func (hb *HandlerBundle) writeError(c *gin.Context, err error) {
	var validationBooking booking.ValidationError
	var validationTemplate template.ValidationError
	var validationAvailability availability.ValidationError
	var transition booking.InvalidTransitionError
	var storageBooking booking.StorageError
	var storageTemplate template.StorageError
	var storageAvailability availability.StorageError

	switch {
	case errors.Is(err, booking.ErrProfileNotFound),
		errors.Is(err, booking.ErrServiceNotFound),
		errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, template.ErrNotFound),
		errors.Is(err, availability.ErrProfileNotFound),
		errors.Is(err, availability.ErrSlotNotFound),
		errors.Is(err, availability.ErrTemplateNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, booking.ErrForbidden),
		errors.Is(err, template.ErrForbidden),
		errors.Is(err, availability.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, booking.ErrDuplicateBooking),
		errors.Is(err, booking.ErrSlotFull),
		errors.Is(err, availability.ErrDateProtected):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, booking.ErrSlotExpired),
		errors.Is(err, booking.ErrNoChangeRequested),
		errors.Is(err, availability.ErrInvalidCapacity),
		errors.As(err, &validationBooking),
		errors.As(err, &validationTemplate),
		errors.As(err, &validationAvailability),
		errors.As(err, &transition):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())

	case errors.As(err, &storageBooking),
		errors.As(err, &storageTemplate),
		errors.As(err, &storageAvailability):
		hb.Logger.Error("storage failure", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "temporary storage failure", "please retry")

	default:
		hb.Logger.Error("unhandled error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}

// parseDateParam reads a "YYYY-MM-DD" path or query value.
func parseDateParam(value string) (time.Time, bool) {
	d, err := time.Parse(utils.DateLayout, value)
	return d, err == nil
}
