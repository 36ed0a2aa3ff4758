package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bookhive/config"
	bookingRepo "bookhive/database/repository/booking"
	"bookhive/services/notification"
	"bookhive/utils"
)

// StartReminderScheduler schedules the daily reminder sweep: every run
// enqueues one reminder per CONFIRMED booking scheduled for tomorrow.
// The schedule comes from REMINDER_CRON_SPEC (default 18:00 daily).
func StartReminderScheduler(bookings bookingRepo.BookingRepository, notifier notification.NotificationService) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New()
	spec := config.AppConfig.ReminderCronSpec
	_, err := c.AddFunc(spec, func() {
		runReminderSweep(bookings, notifier, logger)
	})
	if err != nil {
		logger.Fatal("Invalid reminder cron spec", zap.String("spec", spec), zap.Error(err))
	}

	c.Start()
	logger.Info("Reminder scheduler started", zap.String("spec", spec))
	return c
}

func runReminderSweep(bookings bookingRepo.BookingRepository, notifier notification.NotificationService, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tomorrow := utils.NormalizeDate(time.Now().AddDate(0, 0, 1))
	confirmed, err := bookings.ListConfirmedForDate(ctx, tomorrow)
	if err != nil {
		logger.Error("Reminder sweep query failed", zap.Error(err))
		return
	}

	sent := 0
	for i := range confirmed {
		if err := notifier.NotifyReminder(ctx, &confirmed[i]); err != nil {
			logger.Warn("Reminder enqueue failed",
				zap.String("booking_id", confirmed[i].ID), zap.Error(err))
			continue
		}
		sent++
	}
	logger.Info("Reminder sweep complete",
		zap.String("date", utils.FormatDate(tomorrow)),
		zap.Int("confirmed", len(confirmed)),
		zap.Int("enqueued", sent))
}
