package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookhive/models"
)

func activeStatuses() bson.A {
	return bson.A{models.StatusPending, models.StatusConfirmed}
}

func (r *mongoBookingRepo) RefExists(ctx context.Context, bookingRef string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"booking_ref": bookingRef})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountActiveForUserSlot backs the duplicate-booking guard: a user may hold
// at most one PENDING or CONFIRMED booking per profile+date+time_slot.
func (r *mongoBookingRepo) CountActiveForUserSlot(ctx context.Context, userID, profileID string, date time.Time, timeSlot string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id":      userID,
		"profile_id":   profileID,
		"booking_date": date,
		"time_slot":    timeSlot,
		"status":       bson.M{"$in": activeStatuses()},
	}
	return r.coll.CountDocuments(ctx, filter)
}

// CountConfirmedForSlot is the advisory capacity pre-check at creation time.
// Only CONFIRMED bookings count against max_capacity; the race-free gate is
// the conditional increment in the availability repository.
func (r *mongoBookingRepo) CountConfirmedForSlot(ctx context.Context, profileID string, date time.Time, timeSlot string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"profile_id":   profileID,
		"booking_date": date,
		"time_slot":    timeSlot,
		"status":       models.StatusConfirmed,
	}
	return r.coll.CountDocuments(ctx, filter)
}

// DatesWithActiveBookings returns the subset of dates holding at least one
// PENDING or CONFIRMED booking for the profile. Those dates are protected
// from bulk slot operations.
func (r *mongoBookingRepo) DatesWithActiveBookings(ctx context.Context, profileID string, dates []time.Time) ([]time.Time, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	in := make(bson.A, len(dates))
	for i, d := range dates {
		in[i] = d
	}
	filter := bson.M{
		"profile_id":   profileID,
		"booking_date": bson.M{"$in": in},
		"status":       bson.M{"$in": activeStatuses()},
	}
	raw, err := r.coll.Distinct(ctx, "booking_date", filter)
	if err != nil {
		return nil, err
	}

	var protected []time.Time
	for _, v := range raw {
		switch d := v.(type) {
		case time.Time:
			protected = append(protected, d.UTC())
		case primitive.DateTime:
			protected = append(protected, d.Time().UTC())
		}
	}
	return protected, nil
}

// ListConfirmedForDate feeds the reminder job.
func (r *mongoBookingRepo) ListConfirmedForDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"booking_date": date, "status": models.StatusConfirmed})
}
