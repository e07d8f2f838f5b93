package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
	"github.com/roomly/rental-system/internal/infrastructure/session"
)

func newAuthService(users *stubUserRepo) (*AuthService, *session.MemoryStore) {
	sessions := session.NewMemoryStore()
	return NewAuthService(users, sessions, "test-secret", time.Hour, discardLogger), sessions
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc, _ := newAuthService(users)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "ana@example.com" {
		t.Errorf("email must be stored lowercased, got %q", user.Email)
	}
	if user.ID == "" {
		t.Error("expected a generated id")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "secret" {
		t.Error("password must not be stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")) != nil {
		t.Error("stored hash must verify against the original password")
	}
	if user.Avatar == "" {
		t.Error("expected a generated default avatar")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc, _ := newAuthService(users)

	in := ports.RegisterInput{Email: "ana@example.com", Password: "secret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same email in a different case is still a duplicate.
	in.Email = "ANA@example.com"
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "ana@example.com"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing password: expected ErrValidation, got %v", err)
	}

	_, err = svc.Register(context.Background(), ports.RegisterInput{Password: "secret"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing email: expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ana@example.com",
		Password: "secret",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	users := newStubUserRepo()
	svc, sessions := newAuthService(users)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ANA@EXAMPLE.COM", "secret")
	if err != nil {
		t.Fatalf("login with upper-case email failed: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("unexpected user %q", user.Email)
	}

	snapshot, err := sessions.Get(context.Background())
	if err != nil {
		t.Fatalf("session get failed: %v", err)
	}
	if snapshot == nil || snapshot.Email != "ana@example.com" {
		t.Errorf("expected session snapshot for ana@example.com, got %+v", snapshot)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc, _ := newAuthService(users)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "ana@example.com", Password: "secret"})

	_, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Logout_ClearsSession(t *testing.T) {
	users := newStubUserRepo()
	svc, sessions := newAuthService(users)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "ana@example.com", Password: "secret"})
	_, _, _ = svc.Login(context.Background(), "ana@example.com", "secret")

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	snapshot, _ := sessions.Get(context.Background())
	if snapshot != nil {
		t.Errorf("expected empty session after logout, got %+v", snapshot)
	}
}

// ---------------------------------------------------------------------------
// UpdatePhoto tests
// ---------------------------------------------------------------------------

func TestAuthService_UpdatePhoto(t *testing.T) {
	users := newStubUserRepo()
	svc, _ := newAuthService(users)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "ana@example.com", Password: "secret"})

	updated, err := svc.UpdatePhoto(context.Background(), "ana@example.com", "data:image/png;base64,xyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatal("expected updated=true")
	}

	stored, _ := users.FindByEmail(context.Background(), "ana@example.com")
	if !strings.HasPrefix(stored.Avatar, "data:image/png") {
		t.Errorf("avatar not persisted, got %q", stored.Avatar)
	}
}

func TestAuthService_UpdatePhoto_UnknownUserIsNoop(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	updated, err := svc.UpdatePhoto(context.Background(), "ghost@example.com", "pic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Error("expected updated=false for unknown user")
	}
}
