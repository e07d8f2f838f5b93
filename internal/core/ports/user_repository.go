package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Add inserts a new user. Returns domain.ErrUserExists when the email
	// unique index collides.
	Add(ctx context.Context, user *domain.User) error
	// FindByEmail retrieves a user by its (lowercased) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Put replaces the full record by primary key; no partial-merge
	// semantics.
	Put(ctx context.Context, user *domain.User) error
}
