package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// CreateRoomInput carries all data needed to list a new room. Lat and Lon
// default to 0 when absent; coordinates are then backfilled asynchronously
// by the geocode workers.
type CreateRoomInput struct {
	Address    string
	City       string
	Lat        float64
	Lon        float64
	Price      float64
	Image      string
	OwnerEmail string
}

// RoomService defines use-case operations for rooms.
type RoomService interface {
	Create(ctx context.Context, in CreateRoomInput) (*domain.Room, error)
	// ByOwner returns the owner's non-deleted rooms.
	ByOwner(ctx context.Context, ownerEmail string) ([]domain.Room, error)
	// ByID returns the room regardless of deletion state.
	ByID(ctx context.Context, id string) (*domain.Room, error)
	// All returns every room, soft-deleted included; callers filter.
	All(ctx context.Context) ([]domain.Room, error)
	// SoftDelete marks the room deleted and cascades: pending requests are
	// cancelled and any active rental is ended. callerEmail must be the
	// owner; pass empty to skip the ownership check.
	SoftDelete(ctx context.Context, id, callerEmail string) error
	// BulkSetImage replaces the image reference of every room.
	BulkSetImage(ctx context.Context, image string) (int, error)
}
