package booking

import "bookhive/models"

// transitionTable is the single source of truth for allowed status moves.
// PENDING and CONFIRMED are the open states; everything else is terminal.
var transitionTable = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusRejected, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted, models.StatusNoShow},
}

// CanTransition reports whether moving from one status to the other is allowed.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// occupancyDelta gives the slot counter effect of a transition. Only
// CONFIRMED bookings occupy capacity: entering CONFIRMED reserves a unit,
// leaving it for CANCELLED releases one. COMPLETED and NO_SHOW keep the
// unit (the appointment happened, or the slot was wasted either way).
func occupancyDelta(from, to models.BookingStatus) int {
	switch {
	case from == models.StatusPending && to == models.StatusConfirmed:
		return 1
	case from == models.StatusConfirmed && to == models.StatusCancelled:
		return -1
	default:
		return 0
	}
}
