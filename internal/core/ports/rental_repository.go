package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RentalRepository defines persistence operations for rentals.
type RentalRepository interface {
	Add(ctx context.Context, rental *domain.Rental) error
	FindByID(ctx context.Context, id string) (*domain.Rental, error)
	// FindByRoom returns every rental for the room, active or not.
	FindByRoom(ctx context.Context, roomID string) ([]domain.Rental, error)
	// FindActiveByRoom returns the single active rental for the room, or
	// domain.ErrRentalNotFound when the room is free.
	FindActiveByRoom(ctx context.Context, roomID string) (*domain.Rental, error)
	FindByTenant(ctx context.Context, email string) ([]domain.Rental, error)
	All(ctx context.Context) ([]domain.Rental, error)
	// Put replaces the full record by primary key.
	Put(ctx context.Context, rental *domain.Rental) error
}
