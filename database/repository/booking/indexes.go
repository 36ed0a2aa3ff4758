package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The unique booking_ref index doubles as the last line of defense for the
// ref regeneration loop.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "booking_ref", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking_ref"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "booking_date", Value: 1}},
			Options: options.Index().SetName("user_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "booking_date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("profile_date_status_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	noteIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("booking_created_idx"),
	}
	if _, err := r.noteColl.Indexes().CreateOne(ctx, noteIdx); err != nil {
		return fmt.Errorf("failed to create booking note indexes: %w", err)
	}
	return nil
}
