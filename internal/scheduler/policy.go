package scheduler

import (
	"turf-booking/internal/data/entity"
)

// Policy carries the two admission switches read from config.
type Policy struct {
	// StrictTransitions limits status changes to the forward graph
	// PENDING->CONFIRMED, PENDING->CANCELLED, CONFIRMED->CANCELLED.
	StrictTransitions bool

	// IncludeCancelled keeps cancelled bookings in the conflict check so a
	// cancelled slot stays blocked.
	IncludeCancelled bool
}

var forward = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:   {entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	entity.BookingStatusConfirmed: {entity.BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to
// another. Setting the current status again is always allowed.
func (p Policy) CanTransition(from, to entity.BookingStatus) bool {
	if !to.Valid() {
		return false
	}
	if !p.StrictTransitions || from == to {
		return true
	}
	for _, next := range forward[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Blocks reports whether an existing booking takes part in the conflict check.
func (p Policy) Blocks(b *entity.Booking) bool {
	return p.IncludeCancelled || b.Status != entity.BookingStatusCancelled
}

// FindConflict returns the first existing booking whose window overlaps the
// requested one, or nil when the slot is free.
func (p Policy) FindConflict(existing []*entity.Booking, want Interval) *entity.Booking {
	for _, b := range existing {
		if !p.Blocks(b) {
			continue
		}
		if want.Overlaps(Interval{Start: b.StartTime, End: b.EndTime}) {
			return b
		}
	}
	return nil
}
