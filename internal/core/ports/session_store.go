package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// SessionStore holds the single active session snapshot. Implementations
// are non-durable: the snapshot is a login-scoped convenience
// cache, not an authentication token.
type SessionStore interface {
	// Set stores the snapshot, clearing any prior session.
	Set(ctx context.Context, session domain.Session) error
	// Get returns the stored snapshot, or nil when nobody is logged in.
	Get(ctx context.Context) (*domain.Session, error)
	// LoggedIn reports whether a snapshot exists.
	LoggedIn(ctx context.Context) (bool, error)
	// Clear removes the snapshot.
	Clear(ctx context.Context) error
}
