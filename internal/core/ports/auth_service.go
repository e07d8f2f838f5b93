package ports

import (
	"context"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account. Avatar is
// optional; a default initials avatar is generated when empty. Role
// defaults to domain.RoleUser when empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Avatar   string
	Role     string
}

// AuthService implements registration, login, and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the credentials (email matched case-insensitively),
	// stores the session snapshot, and returns a signed token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context) error
	// CurrentSession returns the active session snapshot, or nil.
	CurrentSession(ctx context.Context) (*domain.Session, error)
	// UpdatePhoto replaces the user's avatar. Returns false without error
	// when the user does not exist.
	UpdatePhoto(ctx context.Context, email, avatar string) (bool, error)
}
