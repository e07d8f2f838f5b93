package domain

import "time"

// Rental is an approved occupancy of a room by a tenant. Rentals are created
// only by accepting a request; at most one rental per room is active at any
// time.
type Rental struct {
	ID          string     `json:"id"`
	RoomID      string     `json:"room_id"`
	TenantEmail string     `json:"tenant_email"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}
