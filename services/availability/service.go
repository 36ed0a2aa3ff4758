// Package availability materializes bookable slots for profiles and serves
// the public availability reads. It owns slot CRUD and the bulk operations;
// occupancy counters are mutated only through the booking lifecycle.
package availability

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	availabilityRepo "bookhive/database/repository/availability"
	bookingRepo "bookhive/database/repository/booking"
	profileRepo "bookhive/database/repository/profile"
	templateRepo "bookhive/database/repository/template"
	"bookhive/models"
	"bookhive/services/schedule"
	"bookhive/utils"
)

// AvailabilityService manages slot materialization, queries, and bulk
// operations across dates.
type AvailabilityService interface {
	CreateSlotsForDate(ctx context.Context, ownerID, profileID string, date time.Time, cfg models.TimeSlotConfig) ([]models.AvailabilitySlot, error)
	ApplyTemplate(ctx context.Context, ownerID, profileID string, date time.Time, templateID string, maxCapacity int) ([]models.AvailabilitySlot, error)
	GetDateAvailability(ctx context.Context, profileID string, date time.Time) (*models.DateAvailability, error)
	GetRangeAvailability(ctx context.Context, profileID string, start, end time.Time) ([]models.DateAvailability, error)
	UpdateSlotCapacity(ctx context.Context, ownerID, slotID string, newCapacity int) (*models.AvailabilitySlot, error)
	DeleteSlot(ctx context.Context, ownerID, slotID string) error

	BulkApplyTemplate(ctx context.Context, ownerID, profileID, templateID string, dates []time.Time, maxCapacity int) (*models.BulkResult, error)
	BulkDeleteSlots(ctx context.Context, ownerID, profileID string, dates []time.Time) (*models.BulkResult, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Slots     availabilityRepo.AvailabilityRepository
	Bookings  bookingRepo.BookingRepository
	Profiles  profileRepo.ProfileRepository
	Templates templateRepo.TemplateRepository
	Cache     *RangeCache // nil disables caching
	Logger    *zap.Logger

	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// CreateSlotsForDate runs the generator for cfg and persists one slot per
// emitted window. Existing slots on the date are left alone; repeated calls
// stack duplicate rows, so callers wanting a clean slate use ApplyTemplate.
func (s *DefaultAvailabilityService) CreateSlotsForDate(ctx context.Context, ownerID, profileID string, date time.Time, cfg models.TimeSlotConfig) ([]models.AvailabilitySlot, error) {
	if _, err := s.ownedProfile(ctx, ownerID, profileID); err != nil {
		return nil, err
	}
	if cfg.MaxCapacityPerSlot < 1 {
		return nil, ErrInvalidCapacity
	}

	defs, err := schedule.Generate(schedule.Config{
		StartTime:    cfg.StartTime,
		EndTime:      cfg.EndTime,
		SlotDuration: cfg.SlotDuration,
		BreakStart:   cfg.BreakStart,
		BreakEnd:     cfg.BreakEnd,
	})
	if err != nil {
		if verr, ok := err.(schedule.ValidationError); ok {
			return nil, ValidationError{Field: verr.Field, Reason: verr.Reason}
		}
		return nil, err
	}

	slots := s.materialize(profileID, date, defs, cfg.MaxCapacityPerSlot)
	if len(slots) > 0 {
		if err := s.Slots.CreateMany(ctx, slots); err != nil {
			return nil, storageErr("slot insert", err)
		}
		s.invalidate(ctx, profileID)
	}
	return slots, nil
}

// ApplyTemplate overwrites the date's slots with the template's windows:
// existing slots are deleted first, then recreated. Dates with active
// bookings are refused so a live booking never loses its capacity record.
func (s *DefaultAvailabilityService) ApplyTemplate(ctx context.Context, ownerID, profileID string, date time.Time, templateID string, maxCapacity int) ([]models.AvailabilitySlot, error) {
	if _, err := s.ownedProfile(ctx, ownerID, profileID); err != nil {
		return nil, err
	}
	tpl, err := s.ownedTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	if maxCapacity < 1 {
		return nil, ErrInvalidCapacity
	}

	date = utils.NormalizeDate(date)
	protected, err := s.Bookings.DatesWithActiveBookings(ctx, profileID, []time.Time{date})
	if err != nil {
		return nil, storageErr("protection check", err)
	}
	if len(protected) > 0 {
		return nil, ErrDateProtected
	}

	slots, err := s.overwriteDate(ctx, profileID, date, tpl.Slots, maxCapacity)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, profileID)
	return slots, nil
}

// GetDateAvailability returns the public per-date summary, slots ordered by
// time_slot ascending.
func (s *DefaultAvailabilityService) GetDateAvailability(ctx context.Context, profileID string, date time.Time) (*models.DateAvailability, error) {
	if _, err := s.profile(ctx, profileID); err != nil {
		return nil, err
	}

	date = utils.NormalizeDate(date)
	slots, err := s.Slots.GetByProfileAndDate(ctx, profileID, date)
	if err != nil {
		return nil, storageErr("slot query", err)
	}
	return summarize(date, slots), nil
}

// GetRangeAvailability returns per-date summaries over [start, end], one
// entry per date that has slots. The result is cached per profile; any slot
// write invalidates it.
func (s *DefaultAvailabilityService) GetRangeAvailability(ctx context.Context, profileID string, start, end time.Time) ([]models.DateAvailability, error) {
	if _, err := s.profile(ctx, profileID); err != nil {
		return nil, err
	}

	start = utils.NormalizeDate(start)
	end = utils.NormalizeDate(end)
	if end.Before(start) {
		return nil, ValidationError{Field: "end", Reason: "range end precedes start"}
	}

	if s.Cache != nil {
		if cached := s.Cache.Get(ctx, profileID, start, end); cached != nil {
			return cached, nil
		}
	}

	slots, err := s.Slots.GetByProfileDateRange(ctx, profileID, start, end)
	if err != nil {
		return nil, storageErr("slot query", err)
	}

	byDate := make(map[time.Time][]models.AvailabilitySlot)
	for _, slot := range slots {
		d := utils.NormalizeDate(slot.Date)
		byDate[d] = append(byDate[d], slot)
	}
	out := make([]models.DateAvailability, 0, len(byDate))
	for d, daySlots := range byDate {
		out = append(out, *summarize(d, daySlots))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	if s.Cache != nil {
		s.Cache.Set(ctx, profileID, start, end, out)
	}
	return out, nil
}

// UpdateSlotCapacity changes a slot's max_capacity. Shrinking below the
// current booked_count is allowed; the slot just reads as unavailable until
// bookings drain.
func (s *DefaultAvailabilityService) UpdateSlotCapacity(ctx context.Context, ownerID, slotID string, newCapacity int) (*models.AvailabilitySlot, error) {
	if newCapacity < 1 {
		return nil, ErrInvalidCapacity
	}

	slot, err := s.ownedSlot(ctx, ownerID, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.Slots.UpdateCapacity(ctx, slotID, newCapacity); err != nil {
		if err == availabilityRepo.ErrNotFound {
			return nil, ErrSlotNotFound
		}
		return nil, storageErr("capacity update", err)
	}
	s.invalidate(ctx, slot.ProfileID)

	slot.MaxCapacity = newCapacity
	slot.IsAvailable = slot.BookedCount < newCapacity
	slot.UpdatedAt = s.now().UTC()
	return slot, nil
}

// DeleteSlot removes a single slot by owner action. Unlike the bulk path
// this is deliberate per-slot surgery and carries no protection check.
func (s *DefaultAvailabilityService) DeleteSlot(ctx context.Context, ownerID, slotID string) error {
	slot, err := s.ownedSlot(ctx, ownerID, slotID)
	if err != nil {
		return err
	}
	if err := s.Slots.DeleteByID(ctx, slotID); err != nil {
		if err == availabilityRepo.ErrNotFound {
			return ErrSlotNotFound
		}
		return storageErr("slot delete", err)
	}
	s.invalidate(ctx, slot.ProfileID)
	return nil
}

// overwriteDate deletes the date's slots and recreates them from defs.
func (s *DefaultAvailabilityService) overwriteDate(ctx context.Context, profileID string, date time.Time, defs []models.TimeSlotDef, maxCapacity int) ([]models.AvailabilitySlot, error) {
	if _, err := s.Slots.DeleteByProfileAndDate(ctx, profileID, date); err != nil {
		return nil, storageErr("slot overwrite delete", err)
	}
	slots := s.materialize(profileID, date, defs, maxCapacity)
	if len(slots) > 0 {
		if err := s.Slots.CreateMany(ctx, slots); err != nil {
			return nil, storageErr("slot insert", err)
		}
	}
	return slots, nil
}

func (s *DefaultAvailabilityService) materialize(profileID string, date time.Time, defs []models.TimeSlotDef, maxCapacity int) []models.AvailabilitySlot {
	date = utils.NormalizeDate(date)
	now := s.now().UTC()
	slots := make([]models.AvailabilitySlot, 0, len(defs))
	for _, def := range defs {
		slots = append(slots, models.AvailabilitySlot{
			ID:          uuid.New().String(),
			ProfileID:   profileID,
			Date:        date,
			TimeSlot:    schedule.SlotLabel(def),
			MaxCapacity: maxCapacity,
			BookedCount: 0,
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return slots
}

func (s *DefaultAvailabilityService) invalidate(ctx context.Context, profileID string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, profileID)
	}
}

func (s *DefaultAvailabilityService) profile(ctx context.Context, profileID string) (*models.Profile, error) {
	p, err := s.Profiles.GetByID(ctx, profileID)
	if err == profileRepo.ErrNotFound {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storageErr("profile lookup", err)
	}
	return p, nil
}

func (s *DefaultAvailabilityService) ownedProfile(ctx context.Context, ownerID, profileID string) (*models.Profile, error) {
	p, err := s.profile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *DefaultAvailabilityService) ownedTemplate(ctx context.Context, ownerID, templateID string) (*models.SlotTemplate, error) {
	tpl, err := s.Templates.GetByID(ctx, templateID)
	if err == templateRepo.ErrNotFound {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, storageErr("template lookup", err)
	}
	if tpl.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return tpl, nil
}

func (s *DefaultAvailabilityService) ownedSlot(ctx context.Context, ownerID, slotID string) (*models.AvailabilitySlot, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err == availabilityRepo.ErrNotFound {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, storageErr("slot lookup", err)
	}
	if _, err := s.ownedProfile(ctx, ownerID, slot.ProfileID); err != nil {
		return nil, err
	}
	return slot, nil
}

func summarize(date time.Time, slots []models.AvailabilitySlot) *models.DateAvailability {
	sort.Slice(slots, func(i, j int) bool { return slots[i].TimeSlot < slots[j].TimeSlot })
	available := 0
	for _, slot := range slots {
		if slot.IsAvailable {
			available++
		}
	}
	return &models.DateAvailability{
		Date:           date,
		TotalSlots:     len(slots),
		AvailableSlots: available,
		Slots:          slots,
	}
}
