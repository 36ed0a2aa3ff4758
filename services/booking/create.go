package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	availabilityRepo "bookhive/database/repository/availability"
	profileRepo "bookhive/database/repository/profile"
	userRepo "bookhive/database/repository/user"
	"bookhive/models"
	"bookhive/services/schedule"
	"bookhive/utils"
)

// Create runs the full booking creation contract: target validation,
// date/slot checks, the duplicate-booking guard, the CONFIRMED-only capacity
// pre-check, then a PENDING insert with a unique reference. Customers with
// auto-accept enabled are confirmed immediately through the same transition
// path as a manual approve.
func (s *DefaultBookingService) Create(ctx context.Context, userID string, req models.BookingCreateRequest) (*models.BookingRefResponse, error) {
	profile, err := s.Profiles.GetByID(ctx, req.ProfileID)
	if err == profileRepo.ErrNotFound {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storageErr("profile lookup", err)
	}
	if !profile.IsActive {
		return nil, ValidationError{Field: "profile_id", Reason: "profile is not accepting bookings"}
	}
	if req.ServiceID != "" && !profile.HasService(req.ServiceID) {
		return nil, ErrServiceNotFound
	}

	date := utils.NormalizeDate(req.BookingDate)
	if err := s.validateSchedule(ctx, req.ProfileID, date, req.TimeSlot); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, userID, req.ProfileID, date, req.TimeSlot); err != nil {
		return nil, err
	}
	if req.TimeSlot != "" {
		if err := s.checkConfirmedCapacity(ctx, req.ProfileID, date, req.TimeSlot); err != nil {
			return nil, err
		}
	}

	ref, err := s.uniqueRef(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	b := &models.Booking{
		ID:          uuid.New().String(),
		BookingRef:  ref,
		UserID:      userID,
		ProfileID:   req.ProfileID,
		ServiceID:   req.ServiceID,
		BookingDate: date,
		TimeSlot:    req.TimeSlot,
		Status:      models.StatusPending,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Bookings.Insert(ctx, b); err != nil {
		return nil, storageErr("booking insert", err)
	}

	s.maybeAutoAccept(ctx, userID, b)

	// Owner notification is best-effort; failures are logged by the
	// dispatcher and never fail the creation.
	if s.Notifier != nil {
		if err := s.Notifier.NotifyOwnerNewBooking(ctx, b); err != nil {
			s.Logger.Warn("owner notification failed", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	return &models.BookingRefResponse{BookingRef: b.BookingRef, BookingID: b.ID}, nil
}

// validateSchedule enforces the date and slot rules shared by creation and
// rescheduling: no past dates, no already-started slots today, and the slot
// must be materialized when one is named.
func (s *DefaultBookingService) validateSchedule(ctx context.Context, profileID string, date time.Time, timeSlot string) error {
	now := s.now().UTC()
	today := utils.NormalizeDate(now)
	if date.Before(today) {
		return ValidationError{Field: "booking_date", Reason: "booking date must not be in the past"}
	}

	if timeSlot == "" {
		return nil
	}

	start, _, err := schedule.SlotRange(timeSlot)
	if err != nil {
		return ValidationError{Field: "time_slot", Reason: err.Error()}
	}
	if date.Equal(today) {
		nowMinutes := now.Hour()*60 + now.Minute()
		if start <= nowMinutes {
			return ErrSlotExpired
		}
	}

	if _, err := s.Slots.GetByProfileDateSlot(ctx, profileID, date, timeSlot); err != nil {
		if err == availabilityRepo.ErrNotFound {
			return ErrSlotNotFound
		}
		return storageErr("slot lookup", err)
	}
	return nil
}

func (s *DefaultBookingService) checkDuplicate(ctx context.Context, userID, profileID string, date time.Time, timeSlot string) error {
	n, err := s.Bookings.CountActiveForUserSlot(ctx, userID, profileID, date, timeSlot)
	if err != nil {
		return storageErr("duplicate booking check", err)
	}
	if n > 0 {
		return ErrDuplicateBooking
	}
	return nil
}

// checkConfirmedCapacity counts CONFIRMED bookings only, since PENDING never
// holds capacity. This pre-check keeps obviously full slots from taking new
// requests; the race-free gate is the conditional reserve at confirm time.
func (s *DefaultBookingService) checkConfirmedCapacity(ctx context.Context, profileID string, date time.Time, timeSlot string) error {
	slot, err := s.Slots.GetByProfileDateSlot(ctx, profileID, date, timeSlot)
	if err != nil {
		if err == availabilityRepo.ErrNotFound {
			return ErrSlotNotFound
		}
		return storageErr("slot lookup", err)
	}
	confirmed, err := s.Bookings.CountConfirmedForSlot(ctx, profileID, date, timeSlot)
	if err != nil {
		return storageErr("capacity check", err)
	}
	if confirmed >= int64(slot.MaxCapacity) {
		return ErrSlotFull
	}
	return nil
}

// maybeAutoAccept confirms the fresh booking when the requesting customer
// has the auto-accept preference, recording a system note. A failed confirm
// (slot filled in the meantime) leaves the booking PENDING for manual review.
func (s *DefaultBookingService) maybeAutoAccept(ctx context.Context, userID string, b *models.Booking) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if err != userRepo.ErrNotFound {
			s.Logger.Warn("auto-accept lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return
	}
	if !u.AutoAccept {
		return
	}

	if err := s.applyTransition(ctx, b, models.StatusConfirmed); err != nil {
		s.Logger.Warn("auto-accept confirm failed, booking left pending",
			zap.String("booking_id", b.ID), zap.Error(err))
		return
	}

	note := &models.BookingNote{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		AuthorID:  "system",
		Text:      "Booking auto-approved per customer preference",
		CreatedAt: s.now().UTC(),
	}
	if err := s.Bookings.AddNote(ctx, note); err != nil {
		s.Logger.Warn("failed to record auto-approval note", zap.String("booking_id", b.ID), zap.Error(err))
	}
}
