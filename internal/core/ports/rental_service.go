package ports

import (
	"context"
	"time"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RentalService defines use-case operations for rentals.
type RentalService interface {
	// ActiveByRoom returns the single active rental for the room, or
	// domain.ErrRentalNotFound when the room is free.
	ActiveByRoom(ctx context.Context, roomID string) (*domain.Rental, error)
	// ByTenant returns the tenant's rental history.
	ByTenant(ctx context.Context, email string) ([]domain.Rental, error)
	// Finish ends the rental: active=false, end=end (now when zero).
	// callerEmail must be the tenant or the room owner; pass empty to
	// skip the check.
	Finish(ctx context.Context, id string, end time.Time, callerEmail string) (*domain.Rental, error)
}
