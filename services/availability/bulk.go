package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bookhive/models"
	"bookhive/utils"
)

// Bulk operations work date by date: one date failing never aborts the
// batch, and dates holding active bookings are partitioned out up front and
// reported as protected. Apply is protected for the same reason delete is,
// since overwriting a date's slots would orphan the capacity records its
// live bookings point at.

// BulkApplyTemplate overwrites each eligible date's slots with the
// template's windows and accumulates the per-date outcome.
func (s *DefaultAvailabilityService) BulkApplyTemplate(ctx context.Context, ownerID, profileID, templateID string, dates []time.Time, maxCapacity int) (*models.BulkResult, error) {
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
	if len(dates) == 0 {
		return nil, ValidationError{Field: "dates", Reason: "must contain at least one date"}
	}

	eligible, protected, err := s.partitionProtected(ctx, profileID, dates)
	if err != nil {
		return nil, err
	}

	result := &models.BulkResult{ProtectedDates: protected}
	for _, date := range eligible {
		if _, err := s.overwriteDate(ctx, profileID, date, tpl.Slots, maxCapacity); err != nil {
			s.Logger.Warn("bulk apply failed for date",
				zap.String("profile_id", profileID),
				zap.String("date", utils.FormatDate(date)),
				zap.Error(err))
			result.FailedCount++
			result.FailedDates = append(result.FailedDates, utils.FormatDate(date))
			continue
		}
		result.SuccessCount++
	}

	if result.SuccessCount > 0 {
		s.invalidate(ctx, profileID)
	}
	return result, nil
}

// BulkDeleteSlots deletes slots for every date without active bookings and
// reports the rest as protected.
func (s *DefaultAvailabilityService) BulkDeleteSlots(ctx context.Context, ownerID, profileID string, dates []time.Time) (*models.BulkResult, error) {
	if _, err := s.ownedProfile(ctx, ownerID, profileID); err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ValidationError{Field: "dates", Reason: "must contain at least one date"}
	}

	eligible, protected, err := s.partitionProtected(ctx, profileID, dates)
	if err != nil {
		return nil, err
	}

	result := &models.BulkResult{ProtectedDates: protected}
	for _, date := range eligible {
		if _, err := s.Slots.DeleteByProfileAndDate(ctx, profileID, date); err != nil {
			s.Logger.Warn("bulk delete failed for date",
				zap.String("profile_id", profileID),
				zap.String("date", utils.FormatDate(date)),
				zap.Error(err))
			result.FailedCount++
			result.FailedDates = append(result.FailedDates, utils.FormatDate(date))
			continue
		}
		result.SuccessCount++
	}

	if result.SuccessCount > 0 {
		s.invalidate(ctx, profileID)
	}
	return result, nil
}

// partitionProtected splits dates into eligible and protected, the latter
// formatted for the result payload. Dates are normalized and deduplicated.
func (s *DefaultAvailabilityService) partitionProtected(ctx context.Context, profileID string, dates []time.Time) ([]time.Time, []string, error) {
	seen := make(map[time.Time]bool, len(dates))
	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = utils.NormalizeDate(d)
		if !seen[d] {
			seen[d] = true
			normalized = append(normalized, d)
		}
	}

	withBookings, err := s.Bookings.DatesWithActiveBookings(ctx, profileID, normalized)
	if err != nil {
		return nil, nil, storageErr("protection check", err)
	}
	protectedSet := make(map[time.Time]bool, len(withBookings))
	for _, d := range withBookings {
		protectedSet[utils.NormalizeDate(d)] = true
	}

	var eligible []time.Time
	var protected []string
	for _, d := range normalized {
		if protectedSet[d] {
			protected = append(protected, utils.FormatDate(d))
		} else {
			eligible = append(eligible, d)
		}
	}
	return eligible, protected, nil
}
