package models

import "time"

// TimeSlotDef is a single "HH:MM" to "HH:MM" window with no inherent capacity.
type TimeSlotDef struct {
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
}

// SlotTemplate is a reusable, named set of slot definitions owned by one owner.
// At most one template per owner has IsDefault set.
type SlotTemplate struct {
	ID        string        `bson:"id" json:"id"`
	OwnerID   string        `bson:"owner_id" json:"owner_id"`
	Name      string        `bson:"name" json:"name"`
	Slots     []TimeSlotDef `bson:"slots" json:"slots"`
	IsDefault bool          `bson:"is_default" json:"is_default"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// TemplateCreateRequest is the payload for creating a template.
type TemplateCreateRequest struct {
	Name      string        `json:"name" binding:"required"`
	Slots     []TimeSlotDef `json:"slots" binding:"required"`
	IsDefault bool          `json:"is_default"`
}

// TemplateUpdateRequest carries a partial template update. Nil fields are
// left untouched.
type TemplateUpdateRequest struct {
	Name      *string        `json:"name,omitempty"`
	Slots     *[]TimeSlotDef `json:"slots,omitempty"`
	IsDefault *bool          `json:"is_default,omitempty"`
}

// PreviewRequest asks the generator for a non-persisted slot preview.
type PreviewRequest struct {
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	SlotDuration int    `json:"slot_duration" binding:"required"`
	BreakStart   string `json:"break_start,omitempty"`
	BreakEnd     string `json:"break_end,omitempty"`
}
