package domain

import "time"

// Room is a rentable unit listed by an owner. A soft-deleted room is hidden
// from listings but keeps its id valid for historical request and rental
// records.
type Room struct {
	ID         string     `json:"id"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	Price      float64    `json:"price"`
	Image      string     `json:"image,omitempty"`
	OwnerEmail string     `json:"owner_email"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the room has been soft-deleted.
func (r *Room) Deleted() bool {
	return r.DeletedAt != nil
}
