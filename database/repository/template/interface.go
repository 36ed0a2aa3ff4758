package templateRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"bookhive/models"
)

// ErrNotFound is returned when no template matches.
var ErrNotFound = errors.New("template not found")

// TemplateRepository persists reusable slot templates per owner.
//
// Default uniqueness is a caller-level protocol: the service clears other
// defaults before setting a new one. A concurrent default-set race can
// transiently leave zero or two flagged documents; GetDefault therefore
// always returns the most recently updated flagged template, which callers
// must treat as the single authoritative default.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *models.SlotTemplate) error
	Update(ctx context.Context, tpl *models.SlotTemplate) error
	Delete(ctx context.Context, ownerID, templateID string) error
	GetByID(ctx context.Context, templateID string) (*models.SlotTemplate, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.SlotTemplate, error)
	GetDefault(ctx context.Context, ownerID string) (*models.SlotTemplate, error)
	ClearDefaults(ctx context.Context, ownerID, exceptID string) error
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a TemplateRepository backed by the given database.
func NewMongoTemplateRepo(db *mongo.Database) TemplateRepository {
	return &mongoTemplateRepo{coll: db.Collection("slot_templates")}
}
