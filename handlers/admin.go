package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhive/middleware"
	"bookhive/models"
	"bookhive/utils"
)

// Owner-side booking management. "admin" in the route prefix means the
// profile owner's management surface, not the platform superuser.

// transitionHandler builds a handler that moves a booking to target.
func (hb *HandlerBundle) transitionHandler(target models.BookingStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Notes string `json:"notes,omitempty"`
		}
		// Body is optional for transitions.
		_ = c.ShouldBindJSON(&req)

		b, err := hb.Bookings.UpdateStatus(c.Request.Context(),
			c.GetString(middleware.CtxUserID), c.Param("bookingID"), target, req.Notes)
		if err != nil {
			hb.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

func (hb *HandlerBundle) ApproveBookingHandler(c *gin.Context) {
	hb.transitionHandler(models.StatusConfirmed)(c)
}

func (hb *HandlerBundle) RejectBookingHandler(c *gin.Context) {
	hb.transitionHandler(models.StatusRejected)(c)
}

func (hb *HandlerBundle) OwnerCancelBookingHandler(c *gin.Context) {
	hb.transitionHandler(models.StatusCancelled)(c)
}

func (hb *HandlerBundle) CompleteBookingHandler(c *gin.Context) {
	hb.transitionHandler(models.StatusCompleted)(c)
}

func (hb *HandlerBundle) NoShowBookingHandler(c *gin.Context) {
	hb.transitionHandler(models.StatusNoShow)(c)
}

// OwnerRescheduleBookingHandler moves a pending or confirmed booking along
// with its held capacity.
func (hb *HandlerBundle) OwnerRescheduleBookingHandler(c *gin.Context) {
	var req models.BookingRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := hb.Bookings.RescheduleByOwner(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("bookingID"), req)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (hb *HandlerBundle) ListProfileBookingsHandler(c *gin.Context) {
	bookings, err := hb.Bookings.ListForProfile(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("profileID"))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (hb *HandlerBundle) AddBookingNoteHandler(c *gin.Context) {
	var req models.BookingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	note, err := hb.Bookings.AddNote(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("bookingID"), req.Text)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (hb *HandlerBundle) ListBookingNotesHandler(c *gin.Context) {
	notes, err := hb.Bookings.ListNotes(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("bookingID"))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
