package ports

import (
	"context"
	"time"

	"github.com/roomly/rental-system/internal/core/domain"
)

// SearchInput carries the public search parameters. MoveIn zero means "any
// date"; ViewerEmail, when set, excludes that user's own rooms from the
// results.
type SearchInput struct {
	City        string
	MoveIn      time.Time
	ViewerEmail string
}

// RoomAvailability is a room decorated with its computed availability.
type RoomAvailability struct {
	Room          domain.Room `json:"room"`
	AvailableFrom time.Time   `json:"available_from"`
	// Occupied is true when an open-ended active rental blocks the room
	// indefinitely.
	Occupied bool `json:"occupied"`
}

// SearchService answers the public room search.
type SearchService interface {
	// Search returns non-deleted rooms in the city that are free on the
	// move-in date, sorted by price ascending.
	Search(ctx context.Context, in SearchInput) ([]RoomAvailability, error)
}
