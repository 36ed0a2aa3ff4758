package templateRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookhive/models"
)

func (r *mongoTemplateRepo) Create(ctx context.Context, tpl *models.SlotTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, tpl)
	return err
}

func (r *mongoTemplateRepo) Update(ctx context.Context, tpl *models.SlotTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": tpl.ID, "owner_id": tpl.OwnerID}, tpl)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTemplateRepo) Delete(ctx context.Context, ownerID, templateID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": templateID, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTemplateRepo) GetByID(ctx context.Context, templateID string) (*models.SlotTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tpl models.SlotTemplate
	err := r.coll.FindOne(ctx, bson.M{"id": templateID}).Decode(&tpl)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *mongoTemplateRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.SlotTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tpls []models.SlotTemplate
	if err := cursor.All(ctx, &tpls); err != nil {
		return nil, err
	}
	return tpls, nil
}

// GetDefault returns the flagged default, tie-broken by most recent
// updated_at so a transient double-default still resolves to one winner.
func (r *mongoTemplateRepo) GetDefault(ctx context.Context, ownerID string) (*models.SlotTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	var tpl models.SlotTemplate
	err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID, "is_default": true}, opts).Decode(&tpl)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *mongoTemplateRepo) ClearDefaults(ctx context.Context, ownerID, exceptID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "is_default": true}
	if exceptID != "" {
		filter["id"] = bson.M{"$ne": exceptID}
	}
	_, err := r.coll.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"is_default": false, "updated_at": time.Now().UTC()},
	})
	return err
}
