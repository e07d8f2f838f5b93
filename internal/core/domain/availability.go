package domain

import "time"

// Availability describes from when a room can be occupied, derived from its
// rental history.
type Availability struct {
	// From is the latest known rental end date. The zero value means the
	// room has never been rented and is free since forever.
	From time.Time
	// Ongoing is true when an active rental has no end date yet. Such a
	// rental blocks the room indefinitely.
	Ongoing bool
}

// ComputeAvailability derives a room's availability from its rental
// history. Deterministic and side-effect-free; it touches no storage.
func ComputeAvailability(rentals []Rental) Availability {
	var a Availability
	for _, r := range rentals {
		if r.End == nil {
			if r.Active {
				a.Ongoing = true
			}
			continue
		}
		if r.End.After(a.From) {
			a.From = *r.End
		}
	}
	return a
}

// AvailableOn reports whether the room is free as of ref: no open-ended
// active rental, and the latest known end date strictly before ref.
func (a Availability) AvailableOn(ref time.Time) bool {
	return !a.Ongoing && a.From.Before(ref)
}
