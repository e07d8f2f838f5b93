package session

import (
	"context"
	"testing"

	"github.com/roomly/rental-system/internal/core/domain"
)

func TestMemoryStore_SingleSlot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if loggedIn, _ := store.LoggedIn(ctx); loggedIn {
		t.Fatal("fresh store must report nobody logged in")
	}
	if snapshot, _ := store.Get(ctx); snapshot != nil {
		t.Fatalf("fresh store must return nil, got %+v", snapshot)
	}

	_ = store.Set(ctx, domain.Session{Email: "ana@example.com", Name: "Ana"})

	snapshot, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if snapshot.Email != "ana@example.com" {
		t.Errorf("unexpected snapshot %+v", snapshot)
	}

	// A second login replaces the first.
	_ = store.Set(ctx, domain.Session{Email: "luis@example.com"})
	snapshot, _ = store.Get(ctx)
	if snapshot.Email != "luis@example.com" {
		t.Errorf("expected the new session to win, got %+v", snapshot)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if loggedIn, _ := store.LoggedIn(ctx); loggedIn {
		t.Error("store must be empty after clear")
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, domain.Session{Email: "ana@example.com"})

	first, _ := store.Get(ctx)
	first.Email = "mutated@example.com"

	second, _ := store.Get(ctx)
	if second.Email != "ana@example.com" {
		t.Errorf("mutating a returned snapshot must not affect the store, got %q", second.Email)
	}
}
