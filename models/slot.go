package models

import "time"

// TimeSlotConfig describes how to carve a working window into slots.
type TimeSlotConfig struct {
	StartTime          string `bson:"start_time" json:"start_time" binding:"required"` // "HH:MM"
	EndTime            string `bson:"end_time" json:"end_time" binding:"required"`     // "HH:MM"
	SlotDuration       int    `bson:"slot_duration" json:"slot_duration" binding:"required"`
	MaxCapacityPerSlot int    `bson:"max_capacity_per_slot" json:"max_capacity_per_slot" binding:"required"`
	BreakStart         string `bson:"break_start,omitempty" json:"break_start,omitempty"`
	BreakEnd           string `bson:"break_end,omitempty" json:"break_end,omitempty"`
}

// AvailabilitySlot is a persisted bookable window for a profile on a date.
// Date always carries a zero time-of-day in UTC so lookups can use exact
// equality. IsAvailable is derived from booked_count < max_capacity and is
// recomputed on every counter or capacity change, never set independently.
type AvailabilitySlot struct {
	ID          string    `bson:"id" json:"id"`
	ProfileID   string    `bson:"profile_id" json:"profile_id"`
	Date        time.Time `bson:"date" json:"date"`
	TimeSlot    string    `bson:"time_slot" json:"time_slot"` // "HH:MM-HH:MM"
	MaxCapacity int       `bson:"max_capacity" json:"max_capacity"`
	BookedCount int       `bson:"booked_count" json:"booked_count"`
	IsAvailable bool      `bson:"is_available" json:"is_available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// DateAvailability summarizes a profile's slots for one date.
type DateAvailability struct {
	Date           time.Time          `json:"date"`
	TotalSlots     int                `json:"total_slots"`
	AvailableSlots int                `json:"available_slots"`
	Slots          []AvailabilitySlot `json:"slots"`
}

// AvailabilityCreateRequest is the payload for materializing slots on a date.
type AvailabilityCreateRequest struct {
	Date   time.Time      `json:"date" binding:"required"`
	Config TimeSlotConfig `json:"config" binding:"required"`
}

// SlotCapacityUpdateRequest carries a capacity edit for one slot.
type SlotCapacityUpdateRequest struct {
	MaxCapacity int `json:"max_capacity" binding:"required"`
}
