package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	availabilityRepo "bookhive/database/repository/availability"
	bookingRepo "bookhive/database/repository/booking"
	"bookhive/models"
	"bookhive/utils"
)

// RescheduleByUser moves the customer's own PENDING booking to a new date
// and slot. Confirmed bookings must go through the owner, who controls the
// capacity move.
func (s *DefaultBookingService) RescheduleByUser(ctx context.Context, userID, bookingID string, req models.BookingRescheduleRequest) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err == bookingRepo.ErrNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, storageErr("booking lookup", err)
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != models.StatusPending {
		return nil, ValidationError{Field: "status", Reason: "only pending bookings can be rescheduled by the customer"}
	}

	return s.reschedule(ctx, b, req)
}

// RescheduleByOwner moves a PENDING or CONFIRMED booking on the owner's
// behalf. For a CONFIRMED booking the held capacity moves with it: the new
// slot is reserved before the old one is released, so an over-full target
// rejects the move without touching the original reservation.
func (s *DefaultBookingService) RescheduleByOwner(ctx context.Context, ownerID, bookingID string, req models.BookingRescheduleRequest) (*models.Booking, error) {
	b, err := s.getOwned(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending && b.Status != models.StatusConfirmed {
		return nil, ValidationError{Field: "status", Reason: "only pending or confirmed bookings can be rescheduled"}
	}

	oldDate, oldSlot := b.BookingDate, b.TimeSlot

	updated, err := s.reschedule(ctx, b, req)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyReschedule(ctx, updated, oldDate, oldSlot); err != nil {
			s.Logger.Warn("reschedule notification failed", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	return updated, nil
}

// reschedule validates the target and commits the move. The caller has
// already settled authorization and status eligibility.
func (s *DefaultBookingService) reschedule(ctx context.Context, b *models.Booking, req models.BookingRescheduleRequest) (*models.Booking, error) {
	newDate := utils.NormalizeDate(req.NewDate)
	newSlot := req.NewTimeSlot

	if utils.SameDate(newDate, b.BookingDate) && newSlot == b.TimeSlot {
		return nil, ErrNoChangeRequested
	}

	if err := s.validateSchedule(ctx, b.ProfileID, newDate, newSlot); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, b.UserID, b.ProfileID, newDate, newSlot); err != nil {
		return nil, err
	}
	if newSlot != "" {
		if err := s.checkConfirmedCapacity(ctx, b.ProfileID, newDate, newSlot); err != nil {
			return nil, err
		}
	}

	if b.Status == models.StatusConfirmed {
		if err := s.moveReservation(ctx, b, newDate, newSlot); err != nil {
			return nil, err
		}
	}

	if err := s.Bookings.UpdateSchedule(ctx, b.ID, newDate, newSlot); err != nil {
		if b.Status == models.StatusConfirmed {
			// Put the reservation back where it was.
			s.revertReservation(ctx, b, newDate, newSlot)
		}
		if err == bookingRepo.ErrNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, storageErr("booking reschedule", err)
	}

	b.BookingDate = newDate
	b.TimeSlot = newSlot
	b.UpdatedAt = s.now().UTC()
	return b, nil
}

// moveReservation shifts a confirmed booking's held unit: reserve the new
// slot first, release the old one only after the reserve succeeds.
func (s *DefaultBookingService) moveReservation(ctx context.Context, b *models.Booking, newDate time.Time, newSlot string) error {
	if newSlot != "" {
		err := s.Slots.Reserve(ctx, b.ProfileID, newDate, newSlot)
		switch err {
		case nil:
		case availabilityRepo.ErrCapacityExhausted:
			return ErrSlotFull
		case availabilityRepo.ErrNotFound:
			return ErrSlotNotFound
		default:
			return storageErr("slot reserve", err)
		}
	}

	if b.TimeSlot != "" {
		if err := s.Slots.Release(ctx, b.ProfileID, b.BookingDate, b.TimeSlot); err != nil {
			s.Logger.Error("failed to release previous slot on reschedule",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	return nil
}

// revertReservation undoes moveReservation after a failed schedule write.
func (s *DefaultBookingService) revertReservation(ctx context.Context, b *models.Booking, newDate time.Time, newSlot string) {
	if newSlot != "" {
		if err := s.Slots.Release(ctx, b.ProfileID, newDate, newSlot); err != nil {
			s.Logger.Error("failed to release new slot on reschedule rollback",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	if b.TimeSlot != "" {
		if err := s.Slots.Reserve(ctx, b.ProfileID, b.BookingDate, b.TimeSlot); err != nil {
			s.Logger.Error("failed to restore previous slot on reschedule rollback",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
}
