package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RequestRepository defines persistence operations for rental requests.
type RequestRepository interface {
	Add(ctx context.Context, request *domain.Request) error
	FindByID(ctx context.Context, id string) (*domain.Request, error)
	// FindByRoom returns the room's non-soft-deleted requests in insertion
	// order.
	FindByRoom(ctx context.Context, roomID string) ([]domain.Request, error)
	// FindByRequester returns the requester's non-soft-deleted requests.
	FindByRequester(ctx context.Context, email string) ([]domain.Request, error)
	// Put replaces the full record by primary key.
	Put(ctx context.Context, request *domain.Request) error
}
