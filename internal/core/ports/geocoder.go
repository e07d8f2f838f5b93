package ports

import "context"

// Geocoder resolves a street address to geographic coordinates. It is an
// opaque external collaborator: the core never depends on it for
// correctness and tolerates any failure.
type Geocoder interface {
	Geocode(ctx context.Context, address, city string) (lat, lon float64, err error)
}

// GeocodeJob asks the backfill workers to resolve coordinates for a room
// that was created without them.
type GeocodeJob struct {
	RoomID  string
	Address string
	City    string
}
