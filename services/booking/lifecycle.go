package booking

import (
	"context"

	"go.uber.org/zap"

	availabilityRepo "bookhive/database/repository/availability"
	bookingRepo "bookhive/database/repository/booking"
	profileRepo "bookhive/database/repository/profile"
	"bookhive/models"
)

// applyTransition moves b to newStatus, applying the occupancy effect in the
// same logical step. When confirming a pending booking the slot reserve runs first and
// is rolled back if a concurrent transition wins the status update, so the
// counter can never double-apply. b is updated in place on success.
func (s *DefaultBookingService) applyTransition(ctx context.Context, b *models.Booking, newStatus models.BookingStatus) error {
	if !CanTransition(b.Status, newStatus) {
		return InvalidTransitionError{From: b.Status, To: newStatus}
	}

	delta := occupancyDelta(b.Status, newStatus)
	hasSlot := b.TimeSlot != ""

	if delta > 0 && hasSlot {
		err := s.Slots.Reserve(ctx, b.ProfileID, b.BookingDate, b.TimeSlot)
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

	if err := s.Bookings.UpdateStatusIfCurrent(ctx, b.ID, b.Status, newStatus); err != nil {
		if delta > 0 && hasSlot {
			// Give the reserved unit back before reporting the conflict.
			if rerr := s.Slots.Release(ctx, b.ProfileID, b.BookingDate, b.TimeSlot); rerr != nil {
				s.Logger.Error("failed to roll back slot reservation",
					zap.String("booking_id", b.ID), zap.Error(rerr))
			}
		}
		if err == bookingRepo.ErrNotFound {
			return ErrBookingNotFound
		}
		if err == bookingRepo.ErrStatusConflict {
			return InvalidTransitionError{From: b.Status, To: newStatus}
		}
		return storageErr("booking status update", err)
	}

	if delta < 0 && hasSlot {
		if err := s.Slots.Release(ctx, b.ProfileID, b.BookingDate, b.TimeSlot); err != nil {
			// The status change is committed; the cached counter will be off
			// until reconciled, which beats resurrecting a cancelled booking.
			s.Logger.Error("failed to release slot after cancellation",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	b.Status = newStatus
	return nil
}

// UpdateStatus is the owner-side transition entry point. Ownership of the
// booking's profile is verified; the transition table decides the rest.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, ownerID, bookingID string, newStatus models.BookingStatus, notes string) (*models.Booking, error) {
	if !newStatus.Valid() {
		return nil, ValidationError{Field: "status", Reason: "unknown status"}
	}

	b, err := s.getOwned(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, b, newStatus); err != nil {
		return nil, err
	}

	if notes != "" {
		if _, err := s.AddNote(ctx, ownerID, bookingID, notes); err != nil {
			s.Logger.Warn("failed to attach transition note", zap.String("booking_id", bookingID), zap.Error(err))
		}
	}
	return b, nil
}

// CancelByUser cancels the requesting user's own booking. PENDING and
// CONFIRMED bookings may be cancelled; only the latter releases capacity.
func (s *DefaultBookingService) CancelByUser(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
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

	if err := s.applyTransition(ctx, b, models.StatusCancelled); err != nil {
		return nil, err
	}
	return b, nil
}

// getOwned loads a booking and verifies the requester owns its profile.
func (s *DefaultBookingService) getOwned(ctx context.Context, ownerID, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err == bookingRepo.ErrNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, storageErr("booking lookup", err)
	}

	profile, err := s.Profiles.GetByID(ctx, b.ProfileID)
	if err == profileRepo.ErrNotFound {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storageErr("profile lookup", err)
	}
	if profile.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return b, nil
}
