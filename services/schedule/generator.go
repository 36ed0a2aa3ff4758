// Package schedule turns a working window into discrete bookable slots.
// Generation is a pure function of its inputs: no I/O, no clock reads.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"bookhive/models"
)

const (
	MinSlotDuration = 5   // minutes
	MaxSlotDuration = 240 // minutes
)

// ValidationError reports malformed generator input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Config is the generator input. BreakStart/BreakEnd are optional; when set,
// any candidate slot overlapping [BreakStart, BreakEnd) is skipped and the
// cursor jumps to BreakEnd.
type Config struct {
	StartTime    string // "HH:MM"
	EndTime      string // "HH:MM"
	SlotDuration int    // minutes
	BreakStart   string
	BreakEnd     string
}

// Generate emits the ordered slot definitions for cfg. A slot whose end
// exactly equals the window end is included; one that would overflow is
// dropped rather than truncated to fit, so an uneven window leaves a
// trailing gap. The result is empty when start >= end or the break covers
// the whole window.
func Generate(cfg Config) ([]models.TimeSlotDef, error) {
	start, err := ParseClock(cfg.StartTime)
	if err != nil {
		return nil, ValidationError{Field: "start_time", Reason: err.Error()}
	}
	end, err := ParseClock(cfg.EndTime)
	if err != nil {
		return nil, ValidationError{Field: "end_time", Reason: err.Error()}
	}
	if cfg.SlotDuration < MinSlotDuration || cfg.SlotDuration > MaxSlotDuration {
		return nil, ValidationError{
			Field:  "slot_duration",
			Reason: fmt.Sprintf("must be between %d and %d minutes", MinSlotDuration, MaxSlotDuration),
		}
	}

	hasBreak := cfg.BreakStart != "" || cfg.BreakEnd != ""
	var breakStart, breakEnd int
	if hasBreak {
		if breakStart, err = ParseClock(cfg.BreakStart); err != nil {
			return nil, ValidationError{Field: "break_start", Reason: err.Error()}
		}
		if breakEnd, err = ParseClock(cfg.BreakEnd); err != nil {
			return nil, ValidationError{Field: "break_end", Reason: err.Error()}
		}
		if breakStart >= breakEnd {
			return nil, ValidationError{Field: "break_start", Reason: "break start must be before break end"}
		}
	}

	slots := []models.TimeSlotDef{}
	cursor := start
	for {
		slotEnd := cursor + cfg.SlotDuration
		if slotEnd > end {
			break
		}
		if hasBreak && cursor < breakEnd && slotEnd > breakStart {
			// Candidate intersects the break: defer past it entirely.
			cursor = breakEnd
			continue
		}
		slots = append(slots, models.TimeSlotDef{
			StartTime: FormatClock(cursor),
			EndTime:   FormatClock(slotEnd),
		})
		cursor = slotEnd
	}
	return slots, nil
}

// ParseClock parses "HH:MM" into minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q is not in HH:MM format", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%q has an invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%q has an invalid minute", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// SlotRange splits a "HH:MM-HH:MM" label into its start and end minutes.
func SlotRange(timeSlot string) (int, int, error) {
	parts := strings.Split(timeSlot, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q is not in HH:MM-HH:MM format", timeSlot)
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// SlotLabel renders a definition as the persisted "HH:MM-HH:MM" key.
func SlotLabel(def models.TimeSlotDef) string {
	return def.StartTime + "-" + def.EndTime
}
