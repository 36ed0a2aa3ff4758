package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Reserve performs the capacity-guarded increment. The guard lives in the
// filter ($expr on booked_count < max_capacity), so under concurrent confirms
// only max_capacity of them can ever match; the rest see
// ErrCapacityExhausted. is_available is recomputed in a second pipeline stage
// against the already-incremented counter.
func (r *mongoAvailabilityRepo) Reserve(ctx context.Context, profileID string, date time.Time, timeSlot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"profile_id": profileID,
		"date":       date,
		"time_slot":  timeSlot,
		"$expr":      bson.M{"$lt": bson.A{"$booked_count", "$max_capacity"}},
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "booked_count", Value: bson.D{{Key: "$add", Value: bson.A{"$booked_count", 1}}}},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_available", Value: bson.D{{Key: "$lt", Value: bson.A{"$booked_count", "$max_capacity"}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a full slot from a missing one.
		exists := bson.M{"profile_id": profileID, "date": date, "time_slot": timeSlot}
		if n, cerr := r.coll.CountDocuments(ctx, exists); cerr == nil && n > 0 {
			return ErrCapacityExhausted
		}
		return ErrNotFound
	}
	return nil
}

// Release decrements booked_count with a floor of zero; a release against an
// already-zero counter is a no-op, not an error.
func (r *mongoAvailabilityRepo) Release(ctx context.Context, profileID string, date time.Time, timeSlot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"profile_id":   profileID,
		"date":         date,
		"time_slot":    timeSlot,
		"booked_count": bson.M{"$gt": 0},
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "booked_count", Value: bson.D{{Key: "$subtract", Value: bson.A{"$booked_count", 1}}}},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_available", Value: bson.D{{Key: "$lt", Value: bson.A{"$booked_count", "$max_capacity"}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}

	_, err := r.coll.UpdateOne(ctx, filter, pipeline)
	return err
}
