// Package profileRepo exposes the profile catalog the booking core validates
// against. Tenant provisioning is handled by another system; this repository
// is read-mostly.
package profileRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookhive/models"
)

// ErrNotFound is returned when no profile matches.
var ErrNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByID(ctx context.Context, profileID string) (*models.Profile, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*models.Profile, error)
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo constructs a ProfileRepository backed by the given database.
func NewMongoProfileRepo(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepo{coll: db.Collection("profiles")}
}

func (r *mongoProfileRepo) GetByID(ctx context.Context, profileID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Profile
	err := r.coll.FindOne(ctx, bson.M{"id": profileID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProfileRepo) GetByOwnerID(ctx context.Context, ownerID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Profile
	err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
