// Package cron hosts the background machinery: the asynq delivery worker
// and the scheduled reminder job.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookhive/config"
	"bookhive/services/notification"
	"bookhive/utils"
)

// RedisQueueOpt builds the asynq connection options from config.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartNotificationWorker runs the asynq consumer in the background. The
// handlers here only log delivery; a real channel (mail, push) plugs in by
// replacing the handler bodies.
func StartNotificationWorker() *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingCreated, handleBookingCreated(logger))
	mux.HandleFunc(notification.TypeBookingRescheduled, handleBookingRescheduled(logger))
	mux.HandleFunc(notification.TypeBookingReminder, handleBookingReminder(logger))

	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempt), zap.Int("max_attempts", maxAttempts), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("Notification worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()

	return srv
}

func handleBookingCreated(logger *zap.Logger) asynq.HandlerFunc {
	return func(_ context.Context, t *asynq.Task) error {
		var p notification.BookingCreatedPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}
		logger.Info("Delivering new-booking notification",
			zap.String("booking_ref", p.BookingRef),
			zap.String("profile_id", p.ProfileID),
			zap.String("time_slot", p.TimeSlot))
		return nil
	}
}

func handleBookingRescheduled(logger *zap.Logger) asynq.HandlerFunc {
	return func(_ context.Context, t *asynq.Task) error {
		var p notification.ReschedulePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}
		logger.Info("Delivering reschedule notification",
			zap.String("booking_ref", p.BookingRef),
			zap.Time("old_date", p.OldDate),
			zap.Time("new_date", p.NewDate))
		return nil
	}
}

func handleBookingReminder(logger *zap.Logger) asynq.HandlerFunc {
	return func(_ context.Context, t *asynq.Task) error {
		var p notification.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}
		logger.Info("Delivering booking reminder",
			zap.String("booking_ref", p.BookingRef),
			zap.String("user_id", p.UserID),
			zap.Time("booking_date", p.BookingDate))
		return nil
	}
}
