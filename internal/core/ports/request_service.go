package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RequestService drives the request state machine:
// pending → accepted | rejected | cancelled.
type RequestService interface {
	// Create files a pending request by requesterEmail on roomID.
	Create(ctx context.Context, roomID, requesterEmail string) (*domain.Request, error)
	// ByRoom returns the room's non-soft-deleted requests.
	ByRoom(ctx context.Context, roomID string) ([]domain.Request, error)
	// ByRoomAndUser narrows ByRoom to a single requester.
	ByRoomAndUser(ctx context.Context, roomID, email string) ([]domain.Request, error)
	// Mine returns the requester's non-soft-deleted requests.
	Mine(ctx context.Context, email string) ([]domain.Request, error)
	// UpdateState applies a manual transition: rejected (room owner only)
	// or cancelled (requester only).
	UpdateState(ctx context.Context, id string, next domain.RequestState, callerEmail string) (*domain.Request, error)
	// SoftDelete lets the requester remove a rejected or cancelled request
	// from their view.
	SoftDelete(ctx context.Context, id, callerEmail string) error
	// Accept runs the accept transaction: creates the active rental, marks
	// the request accepted, and rejects the remaining pending siblings.
	// callerEmail must be the room owner; pass empty to skip the check.
	Accept(ctx context.Context, id, callerEmail string) (*domain.Rental, error)
}
