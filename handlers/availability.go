package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookhive/middleware"
	"bookhive/models"
	"bookhive/utils"
)

// CreateSlotsHandler materializes slots for one date from an inline config.
func (hb *HandlerBundle) CreateSlotsHandler(c *gin.Context) {
	profileID := c.Param("profileID")
	var req models.AvailabilityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slots, err := hb.Availability.CreateSlotsForDate(c.Request.Context(), c.GetString(middleware.CtxUserID), profileID, req.Date, req.Config)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": slots, "count": len(slots)})
}

// GetRangeAvailabilityHandler is the public cached range read.
func (hb *HandlerBundle) GetRangeAvailabilityHandler(c *gin.Context) {
	profileID := c.Param("profileID")

	start, ok := parseDateParam(c.DefaultQuery("start", utils.FormatDate(time.Now())))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be YYYY-MM-DD")
		return
	}
	end, ok := parseDateParam(c.DefaultQuery("end", utils.FormatDate(time.Now().AddDate(0, 0, 7))))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "end must be YYYY-MM-DD")
		return
	}

	out, err := hb.Availability.GetRangeAvailability(c.Request.Context(), profileID, start, end)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": out})
}

// GetDateAvailabilityHandler returns the public summary for one date.
func (hb *HandlerBundle) GetDateAvailabilityHandler(c *gin.Context) {
	profileID := c.Param("profileID")
	date, ok := parseDateParam(c.Param("date"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	out, err := hb.Availability.GetDateAvailability(c.Request.Context(), profileID, date)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateSlotCapacityHandler edits one slot's max capacity.
func (hb *HandlerBundle) UpdateSlotCapacityHandler(c *gin.Context) {
	var req models.SlotCapacityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slot, err := hb.Availability.UpdateSlotCapacity(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slotID"), req.MaxCapacity)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// DeleteSlotHandler removes a single slot.
func (hb *HandlerBundle) DeleteSlotHandler(c *gin.Context) {
	if err := hb.Availability.DeleteSlot(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slotID")); err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ApplyTemplateHandler overwrites one date's slots from a template.
func (hb *HandlerBundle) ApplyTemplateHandler(c *gin.Context) {
	profileID := c.Param("profileID")
	var req struct {
		Date        time.Time `json:"date" binding:"required"`
		TemplateID  string    `json:"template_id" binding:"required"`
		MaxCapacity int       `json:"max_capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slots, err := hb.Availability.ApplyTemplate(c.Request.Context(), c.GetString(middleware.CtxUserID), profileID, req.Date, req.TemplateID, req.MaxCapacity)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": slots, "count": len(slots)})
}

// BulkApplyTemplateHandler applies a template across many dates.
func (hb *HandlerBundle) BulkApplyTemplateHandler(c *gin.Context) {
	profileID := c.Param("profileID")
	var req models.BulkApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := hb.Availability.BulkApplyTemplate(c.Request.Context(), c.GetString(middleware.CtxUserID), profileID, req.TemplateID, req.Dates, req.MaxCapacity)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BulkDeleteSlotsHandler deletes slots across many dates with protection.
func (hb *HandlerBundle) BulkDeleteSlotsHandler(c *gin.Context) {
	profileID := c.Param("profileID")
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := hb.Availability.BulkDeleteSlots(c.Request.Context(), c.GetString(middleware.CtxUserID), profileID, req.Dates)
	if err != nil {
		hb.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
