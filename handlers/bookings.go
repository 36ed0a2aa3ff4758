package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhive/middleware"
	"bookhive/models"
	"bookhive/utils"
)

// CreateBookingHandler is the customer-facing booking request.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := hb.Bookings.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	b, err := hb.Bookings.GetByID(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.GetString(middleware.CtxRole), c.Param("bookingID"))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingByRefHandler is the public reference lookup.
func (hb *HandlerBundle) GetBookingByRefHandler(c *gin.Context) {
	b, err := hb.Bookings.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (hb *HandlerBundle) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := hb.Bookings.ListForUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler cancels the caller's own booking.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	b, err := hb.Bookings.CancelByUser(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("bookingID"))
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RescheduleBookingHandler moves the caller's own pending booking.
func (hb *HandlerBundle) RescheduleBookingHandler(c *gin.Context) {
	var req models.BookingRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := hb.Bookings.RescheduleByUser(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("bookingID"), req)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
