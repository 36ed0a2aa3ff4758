package availabilityRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"bookhive/models"
)

var (
	// ErrNotFound is returned when no slot matches.
	ErrNotFound = errors.New("availability slot not found")
	// ErrCapacityExhausted is returned by Reserve when the conditional
	// increment matched no document because booked_count reached max_capacity.
	ErrCapacityExhausted = errors.New("slot capacity exhausted")
)

// AvailabilityRepository persists materialized capacity records. Dates are
// always stored normalized to midnight UTC; callers pass them through
// utils.NormalizeDate before hitting this layer.
type AvailabilityRepository interface {
	CreateMany(ctx context.Context, slots []models.AvailabilitySlot) error
	GetByID(ctx context.Context, slotID string) (*models.AvailabilitySlot, error)
	GetByProfileDateSlot(ctx context.Context, profileID string, date time.Time, timeSlot string) (*models.AvailabilitySlot, error)
	GetByProfileAndDate(ctx context.Context, profileID string, date time.Time) ([]models.AvailabilitySlot, error)
	GetByProfileDateRange(ctx context.Context, profileID string, start, end time.Time) ([]models.AvailabilitySlot, error)
	UpdateCapacity(ctx context.Context, slotID string, newCapacity int) error

	// Reserve atomically increments booked_count for the identified slot,
	// succeeding only while booked_count < max_capacity. This is the single
	// race-free gate for occupancy; capacity reads elsewhere are advisory.
	Reserve(ctx context.Context, profileID string, date time.Time, timeSlot string) error
	// Release decrements booked_count, never below zero.
	Release(ctx context.Context, profileID string, date time.Time, timeSlot string) error

	DeleteByID(ctx context.Context, slotID string) error
	DeleteByProfileAndDate(ctx context.Context, profileID string, date time.Time) (int64, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs an AvailabilityRepository backed by the
// given database.
func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &mongoAvailabilityRepo{coll: db.Collection("availability_slots")}
}
