package notification

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookhive/models"
)

// AsynqDispatcher enqueues notification tasks onto the Redis-backed queue.
// The worker in cron/ consumes them; delivery is decoupled from the request.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// NewAsynqDispatcher constructs the production dispatcher.
func NewAsynqDispatcher(redisOpt asynq.RedisClientOpt, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{
		Client: asynq.NewClient(redisOpt),
		Logger: logger,
	}
}

func (d *AsynqDispatcher) enqueue(taskType string, payload any) error {
	task, err := newTask(taskType, payload)
	if err != nil {
		d.Logger.Warn("failed to build notification task", zap.String("type", taskType), zap.Error(err))
		return err
	}
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		d.Logger.Warn("failed to enqueue notification task", zap.String("type", taskType), zap.Error(err))
		return err
	}
	return nil
}

func (d *AsynqDispatcher) NotifyOwnerNewBooking(_ context.Context, b *models.Booking) error {
	return d.enqueue(TypeBookingCreated, BookingCreatedPayload{
		BookingID:   b.ID,
		BookingRef:  b.BookingRef,
		ProfileID:   b.ProfileID,
		UserID:      b.UserID,
		BookingDate: b.BookingDate,
		TimeSlot:    b.TimeSlot,
		Status:      b.Status,
	})
}

func (d *AsynqDispatcher) NotifyReschedule(_ context.Context, b *models.Booking, oldDate time.Time, oldTimeSlot string) error {
	return d.enqueue(TypeBookingRescheduled, ReschedulePayload{
		BookingID:   b.ID,
		BookingRef:  b.BookingRef,
		ProfileID:   b.ProfileID,
		UserID:      b.UserID,
		OldDate:     oldDate,
		OldTimeSlot: oldTimeSlot,
		NewDate:     b.BookingDate,
		NewTimeSlot: b.TimeSlot,
	})
}

func (d *AsynqDispatcher) NotifyReminder(_ context.Context, b *models.Booking) error {
	return d.enqueue(TypeBookingReminder, ReminderPayload{
		BookingID:   b.ID,
		BookingRef:  b.BookingRef,
		UserID:      b.UserID,
		BookingDate: b.BookingDate,
		TimeSlot:    b.TimeSlot,
	})
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.Client.Close()
}
