package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	// Add inserts a new room. Returns domain.ErrDuplicateKey when the
	// primary key already exists.
	Add(ctx context.Context, room *domain.Room) error
	// FindByID retrieves a room whether or not it is soft-deleted; the
	// caller decides how to treat deletion.
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	// FindByOwner returns the owner's non-deleted rooms.
	FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Room, error)
	// All returns every room, soft-deleted included.
	All(ctx context.Context) ([]domain.Room, error)
	// Put replaces the full record by primary key.
	Put(ctx context.Context, room *domain.Room) error
	// BulkSetImage walks every room and replaces its image reference,
	// returning the number of records updated.
	BulkSetImage(ctx context.Context, image string) (int, error)
}
