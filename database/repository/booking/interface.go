package bookingRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"bookhive/models"
)

var (
	// ErrNotFound is returned when no booking matches.
	ErrNotFound = errors.New("booking not found")
	// ErrStatusConflict is returned by UpdateStatusIfCurrent when the stored
	// status no longer matches the expected one (a concurrent transition won).
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

// BookingRepository persists bookings, their notes, and the status-derived
// queries the availability layer needs for deletion protection.
type BookingRepository interface {
	Insert(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByRef(ctx context.Context, bookingRef string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByProfile(ctx context.Context, profileID string) ([]models.Booking, error)

	// UpdateStatusIfCurrent changes the status only if the stored value still
	// equals from; a mismatch yields ErrStatusConflict so concurrent owner
	// actions can never double-apply an occupancy effect.
	UpdateStatusIfCurrent(ctx context.Context, bookingID string, from, to models.BookingStatus) error
	UpdateSchedule(ctx context.Context, bookingID string, newDate time.Time, newTimeSlot string) error

	RefExists(ctx context.Context, bookingRef string) (bool, error)
	CountActiveForUserSlot(ctx context.Context, userID, profileID string, date time.Time, timeSlot string) (int64, error)
	CountConfirmedForSlot(ctx context.Context, profileID string, date time.Time, timeSlot string) (int64, error)
	DatesWithActiveBookings(ctx context.Context, profileID string, dates []time.Time) ([]time.Time, error)
	ListConfirmedForDate(ctx context.Context, date time.Time) ([]models.Booking, error)

	AddNote(ctx context.Context, note *models.BookingNote) error
	ListNotes(ctx context.Context, bookingID string) ([]models.BookingNote, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll     *mongo.Collection
	noteColl *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository backed by the given database.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		noteColl: db.Collection("booking_notes"),
	}
}
