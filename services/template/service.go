// Package template manages reusable slot templates: named sets of time
// windows an owner stamps onto dates, plus the default-template protocol.
package template

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	templateRepo "bookhive/database/repository/template"
	"bookhive/models"
	"bookhive/services/schedule"
)

// TemplateService manages slot templates and slot previews.
type TemplateService interface {
	Create(ctx context.Context, ownerID string, req models.TemplateCreateRequest) (*models.SlotTemplate, error)
	Update(ctx context.Context, ownerID, templateID string, req models.TemplateUpdateRequest) (*models.SlotTemplate, error)
	Delete(ctx context.Context, ownerID, templateID string) error
	Get(ctx context.Context, ownerID, templateID string) (*models.SlotTemplate, error)
	List(ctx context.Context, ownerID string) ([]models.SlotTemplate, error)
	GetDefault(ctx context.Context, ownerID string) (*models.SlotTemplate, error)
	Preview(req models.PreviewRequest) ([]models.TimeSlotDef, error)
}

// DefaultTemplateService is the production implementation.
type DefaultTemplateService struct {
	Templates templateRepo.TemplateRepository
	Logger    *zap.Logger

	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultTemplateService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Create validates and persists a new template. A template created as
// default demotes the owner's previous default first.
func (s *DefaultTemplateService) Create(ctx context.Context, ownerID string, req models.TemplateCreateRequest) (*models.SlotTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := validateSlotDefs(req.Slots); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tpl := &models.SlotTemplate{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Slots:     sortedDefs(req.Slots),
		IsDefault: req.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if tpl.IsDefault {
		if err := s.Templates.ClearDefaults(ctx, ownerID, tpl.ID); err != nil {
			return nil, storageErr("default demotion", err)
		}
	}
	if err := s.Templates.Create(ctx, tpl); err != nil {
		return nil, storageErr("template insert", err)
	}
	return tpl, nil
}

// Update applies a partial edit. Only the owner may update; promoting to
// default demotes the previous default.
func (s *DefaultTemplateService) Update(ctx context.Context, ownerID, templateID string, req models.TemplateUpdateRequest) (*models.SlotTemplate, error) {
	tpl, err := s.getOwned(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ValidationError{Field: "name", Reason: "must not be empty"}
		}
		tpl.Name = name
	}
	if req.Slots != nil {
		if err := validateSlotDefs(*req.Slots); err != nil {
			return nil, err
		}
		tpl.Slots = sortedDefs(*req.Slots)
	}
	if req.IsDefault != nil {
		tpl.IsDefault = *req.IsDefault
	}
	tpl.UpdatedAt = s.now().UTC()

	if tpl.IsDefault {
		if err := s.Templates.ClearDefaults(ctx, ownerID, tpl.ID); err != nil {
			return nil, storageErr("default demotion", err)
		}
	}
	if err := s.Templates.Update(ctx, tpl); err != nil {
		if err == templateRepo.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, storageErr("template update", err)
	}
	return tpl, nil
}

// Delete removes the owner's template. Slots already stamped from it are
// untouched; materialized availability has no link back to its template.
func (s *DefaultTemplateService) Delete(ctx context.Context, ownerID, templateID string) error {
	if _, err := s.getOwned(ctx, ownerID, templateID); err != nil {
		return err
	}
	if err := s.Templates.Delete(ctx, ownerID, templateID); err != nil {
		if err == templateRepo.ErrNotFound {
			return ErrNotFound
		}
		return storageErr("template delete", err)
	}
	return nil
}

func (s *DefaultTemplateService) Get(ctx context.Context, ownerID, templateID string) (*models.SlotTemplate, error) {
	return s.getOwned(ctx, ownerID, templateID)
}

func (s *DefaultTemplateService) List(ctx context.Context, ownerID string) ([]models.SlotTemplate, error) {
	out, err := s.Templates.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storageErr("template list", err)
	}
	return out, nil
}

// GetDefault returns the owner's default template, or ErrNotFound when none
// is flagged.
func (s *DefaultTemplateService) GetDefault(ctx context.Context, ownerID string) (*models.SlotTemplate, error) {
	tpl, err := s.Templates.GetDefault(ctx, ownerID)
	if err == templateRepo.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("default lookup", err)
	}
	return tpl, nil
}

// Preview runs the slot generator without persisting anything, so owners can
// see what a configuration produces before committing it to a template.
func (s *DefaultTemplateService) Preview(req models.PreviewRequest) ([]models.TimeSlotDef, error) {
	defs, err := schedule.Generate(schedule.Config{
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SlotDuration: req.SlotDuration,
		BreakStart:   req.BreakStart,
		BreakEnd:     req.BreakEnd,
	})
	if err != nil {
		if verr, ok := err.(schedule.ValidationError); ok {
			return nil, ValidationError{Field: verr.Field, Reason: verr.Reason}
		}
		return nil, err
	}
	return defs, nil
}

func (s *DefaultTemplateService) getOwned(ctx context.Context, ownerID, templateID string) (*models.SlotTemplate, error) {
	tpl, err := s.Templates.GetByID(ctx, templateID)
	if err == templateRepo.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("template lookup", err)
	}
	if tpl.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return tpl, nil
}

// validateSlotDefs checks each window is well formed and that no two windows
// overlap. Adjacent windows sharing a boundary are fine.
func validateSlotDefs(defs []models.TimeSlotDef) error {
	if len(defs) == 0 {
		return ValidationError{Field: "slots", Reason: "must contain at least one slot"}
	}

	type window struct{ start, end int }
	windows := make([]window, 0, len(defs))
	for _, d := range defs {
		start, err := schedule.ParseClock(d.StartTime)
		if err != nil {
			return ValidationError{Field: "slots", Reason: err.Error()}
		}
		end, err := schedule.ParseClock(d.EndTime)
		if err != nil {
			return ValidationError{Field: "slots", Reason: err.Error()}
		}
		if start >= end {
			return ValidationError{Field: "slots", Reason: "slot start must precede its end"}
		}
		windows = append(windows, window{start, end})
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })
	for i := 1; i < len(windows); i++ {
		if windows[i].start < windows[i-1].end {
			return ValidationError{Field: "slots", Reason: "slots must not overlap"}
		}
	}
	return nil
}

// sortedDefs returns a copy ordered by start time, so stamped slots always
// come out in day order regardless of request ordering.
func sortedDefs(defs []models.TimeSlotDef) []models.TimeSlotDef {
	out := make([]models.TimeSlotDef, len(defs))
	copy(out, defs)
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}
