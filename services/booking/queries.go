package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	bookingRepo "bookhive/database/repository/booking"
	profileRepo "bookhive/database/repository/profile"
	"bookhive/models"
)

// GetByID returns a booking to its customer, the owning profile's owner, or
// an admin. Anyone else gets ErrForbidden.
func (s *DefaultBookingService) GetByID(ctx context.Context, requesterID, role, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err == bookingRepo.ErrNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, storageErr("booking lookup", err)
	}

	if role == models.RoleAdmin || b.UserID == requesterID {
		return b, nil
	}

	profile, err := s.Profiles.GetByID(ctx, b.ProfileID)
	if err == nil && profile.OwnerID == requesterID {
		return b, nil
	}
	if err != nil && err != profileRepo.ErrNotFound {
		return nil, storageErr("profile lookup", err)
	}
	return nil, ErrForbidden
}

// GetByRef looks a booking up by its public reference code. The reference is
// the customer-facing handle, so no ownership check applies.
func (s *DefaultBookingService) GetByRef(ctx context.Context, bookingRef string) (*models.Booking, error) {
	ref := strings.ToUpper(strings.TrimSpace(bookingRef))
	if ref == "" {
		return nil, ValidationError{Field: "booking_ref", Reason: "must not be empty"}
	}

	b, err := s.Bookings.GetByRef(ctx, ref)
	if err == bookingRepo.ErrNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, storageErr("booking lookup", err)
	}
	return b, nil
}

// ListForUser returns the requesting user's own bookings, newest date first.
func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	out, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("booking list", err)
	}
	return out, nil
}

// ListForProfile returns a profile's bookings to its owner.
func (s *DefaultBookingService) ListForProfile(ctx context.Context, ownerID, profileID string) ([]models.Booking, error) {
	profile, err := s.Profiles.GetByID(ctx, profileID)
	if err == profileRepo.ErrNotFound {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storageErr("profile lookup", err)
	}
	if profile.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	out, err := s.Bookings.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, storageErr("booking list", err)
	}
	return out, nil
}

// AddNote attaches an internal note to a booking on behalf of the profile owner.
func (s *DefaultBookingService) AddNote(ctx context.Context, ownerID, bookingID, text string) (*models.BookingNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError{Field: "text", Reason: "must not be empty"}
	}

	if _, err := s.getOwned(ctx, ownerID, bookingID); err != nil {
		return nil, err
	}

	note := &models.BookingNote{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		AuthorID:  ownerID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Bookings.AddNote(ctx, note); err != nil {
		return nil, storageErr("note insert", err)
	}
	return note, nil
}

// ListNotes returns a booking's internal notes to the profile owner.
func (s *DefaultBookingService) ListNotes(ctx context.Context, ownerID, bookingID string) ([]models.BookingNote, error) {
	if _, err := s.getOwned(ctx, ownerID, bookingID); err != nil {
		return nil, err
	}

	notes, err := s.Bookings.ListNotes(ctx, bookingID)
	if err != nil {
		return nil, storageErr("note list", err)
	}
	return notes, nil
}
