package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	availabilityRepo "bookhive/database/repository/availability"
	bookingRepo "bookhive/database/repository/booking"
	profileRepo "bookhive/database/repository/profile"
	userRepo "bookhive/database/repository/user"
	"bookhive/models"
	"bookhive/services/notification"
)

// BookingService is the booking lifecycle engine: creation, status
// transitions with their occupancy effects, cancellation and rescheduling.
type BookingService interface {
	Create(ctx context.Context, userID string, req models.BookingCreateRequest) (*models.BookingRefResponse, error)
	GetByID(ctx context.Context, requesterID, role, bookingID string) (*models.Booking, error)
	GetByRef(ctx context.Context, bookingRef string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListForProfile(ctx context.Context, ownerID, profileID string) ([]models.Booking, error)

	UpdateStatus(ctx context.Context, ownerID, bookingID string, newStatus models.BookingStatus, notes string) (*models.Booking, error)
	CancelByUser(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	RescheduleByUser(ctx context.Context, userID, bookingID string, req models.BookingRescheduleRequest) (*models.Booking, error)
	RescheduleByOwner(ctx context.Context, ownerID, bookingID string, req models.BookingRescheduleRequest) (*models.Booking, error)

	AddNote(ctx context.Context, ownerID, bookingID, text string) (*models.BookingNote, error)
	ListNotes(ctx context.Context, ownerID, bookingID string) ([]models.BookingNote, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Slots    availabilityRepo.AvailabilityRepository
	Profiles profileRepo.ProfileRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger

	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
