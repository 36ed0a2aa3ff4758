package models

import "time"

// BookingStatus is the closed set of booking states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether the booking still holds (or may come to hold)
// slot capacity. PENDING and CONFIRMED are the open states.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal reports whether no further transition is allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && !s.IsActive()
}

// Booking represents a customer's reservation against a profile,
// optionally tied to a specific availability slot.
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	BookingRef  string        `bson:"booking_ref" json:"booking_ref"` // 6-char uppercase hex, globally unique
	UserID      string        `bson:"user_id" json:"user_id"`
	ProfileID   string        `bson:"profile_id" json:"profile_id"`
	ServiceID   string        `bson:"service_id,omitempty" json:"service_id,omitempty"`
	BookingDate time.Time     `bson:"booking_date" json:"booking_date"` // normalized to midnight UTC
	TimeSlot    string        `bson:"time_slot,omitempty" json:"time_slot,omitempty"`
	Status      BookingStatus `bson:"status" json:"status"`
	Notes       string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingNote is an internal note attached to a booking, not visible to customers.
type BookingNote struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	AuthorID  string    `bson:"author_id" json:"author_id"` // "system" for auto-generated notes
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// BookingCreateRequest is the payload for creating a booking.
type BookingCreateRequest struct {
	ProfileID   string    `json:"profile_id" binding:"required"`
	ServiceID   string    `json:"service_id,omitempty"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
	TimeSlot    string    `json:"time_slot,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// BookingRefResponse is returned after a successful creation.
type BookingRefResponse struct {
	BookingRef string `json:"booking_ref"`
	BookingID  string `json:"booking_id"`
}

// BookingStatusUpdateRequest carries an owner-side status change.
type BookingStatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
	Notes  string        `json:"notes,omitempty"`
}

// BookingRescheduleRequest carries a reschedule target.
type BookingRescheduleRequest struct {
	NewDate     time.Time `json:"new_date" binding:"required"`
	NewTimeSlot string    `json:"new_time_slot,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// BookingNoteRequest carries a note to attach to a booking.
type BookingNoteRequest struct {
	Text string `json:"text" binding:"required"`
}
