package notification

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookhive/models"
)

// Task type names routed through the asynq queue.
const (
	TypeBookingCreated     = "notify:booking_created"
	TypeBookingRescheduled = "notify:booking_rescheduled"
	TypeBookingReminder    = "notify:booking_reminder"
)

// BookingCreatedPayload carries what the delivery worker needs to notify a
// profile owner about a fresh booking.
type BookingCreatedPayload struct {
	BookingID   string               `json:"booking_id"`
	BookingRef  string               `json:"booking_ref"`
	ProfileID   string               `json:"profile_id"`
	UserID      string               `json:"user_id"`
	BookingDate time.Time            `json:"booking_date"`
	TimeSlot    string               `json:"time_slot,omitempty"`
	Status      models.BookingStatus `json:"status"`
}

// ReschedulePayload carries old and new schedule details.
type ReschedulePayload struct {
	BookingID   string    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	ProfileID   string    `json:"profile_id"`
	UserID      string    `json:"user_id"`
	OldDate     time.Time `json:"old_date"`
	OldTimeSlot string    `json:"old_time_slot,omitempty"`
	NewDate     time.Time `json:"new_date"`
	NewTimeSlot string    `json:"new_time_slot,omitempty"`
}

// ReminderPayload nudges a customer about tomorrow's confirmed booking.
type ReminderPayload struct {
	BookingID   string    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	UserID      string    `json:"user_id"`
	BookingDate time.Time `json:"booking_date"`
	TimeSlot    string    `json:"time_slot,omitempty"`
}

func newTask(taskType string, payload any) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, data), nil
}
