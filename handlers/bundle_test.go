package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"bookhive/services/availability"
	"bookhive/services/booking"
	"bookhive/services/template"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Logger: zap.NewNop()}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"booking not found", booking.ErrBookingNotFound, http.StatusNotFound},
		{"slot not found", booking.ErrSlotNotFound, http.StatusNotFound},
		{"template not found", template.ErrNotFound, http.StatusNotFound},
		{"profile not found", availability.ErrProfileNotFound, http.StatusNotFound},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden},
		{"template forbidden", template.ErrForbidden, http.StatusForbidden},
		{"duplicate booking", booking.ErrDuplicateBooking, http.StatusConflict},
		{"slot full", booking.ErrSlotFull, http.StatusConflict},
		{"protected date", availability.ErrDateProtected, http.StatusConflict},
		{"expired slot", booking.ErrSlotExpired, http.StatusBadRequest},
		{"invalid capacity", availability.ErrInvalidCapacity, http.StatusBadRequest},
		{"validation", booking.ValidationError{Field: "x", Reason: "y"}, http.StatusBadRequest},
		{"bad transition", booking.InvalidTransitionError{}, http.StatusBadRequest},
		{"storage failure", booking.StorageError{Op: "insert", Err: errors.New("down")}, http.StatusServiceUnavailable},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			hb.writeError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
