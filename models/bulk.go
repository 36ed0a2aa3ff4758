package models

import "time"

// BulkApplyRequest applies a template across multiple dates.
type BulkApplyRequest struct {
	TemplateID  string      `json:"template_id" binding:"required"`
	Dates       []time.Time `json:"dates" binding:"required"`
	MaxCapacity int         `json:"max_capacity" binding:"required"`
}

// BulkDeleteRequest deletes all slots for multiple dates.
type BulkDeleteRequest struct {
	Dates []time.Time `json:"dates" binding:"required"`
}

// BulkResult reports the per-date outcome of a bulk operation. Dates with
// active bookings are never touched; they are listed in ProtectedDates.
type BulkResult struct {
	SuccessCount   int      `json:"success_count"`
	FailedCount    int      `json:"failed_count"`
	FailedDates    []string `json:"failed_dates"`
	ProtectedDates []string `json:"protected_dates"`
}
