// Package notification delivers best-effort messages to profile owners and
// customers. Everything here is fire-and-forget: enqueue failures are logged
// and swallowed, never surfaced to the booking flow.
package notification

import (
	"context"
	"time"

	"bookhive/models"
)

// NotificationService is the contract the booking core depends on.
type NotificationService interface {
	NotifyOwnerNewBooking(ctx context.Context, b *models.Booking) error
	NotifyReschedule(ctx context.Context, b *models.Booking, oldDate time.Time, oldTimeSlot string) error
	NotifyReminder(ctx context.Context, b *models.Booking) error
}
