package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

type stubRoomService struct {
	allFn func(ctx context.Context) ([]domain.Room, error)
}

func (s *stubRoomService) Create(context.Context, ports.CreateRoomInput) (*domain.Room, error) {
	return nil, nil
}
func (s *stubRoomService) ByOwner(context.Context, string) ([]domain.Room, error) { return nil, nil }
func (s *stubRoomService) ByID(context.Context, string) (*domain.Room, error)     { return nil, nil }

func (s *stubRoomService) All(ctx context.Context) ([]domain.Room, error) {
	return s.allFn(ctx)
}

func (s *stubRoomService) SoftDelete(context.Context, string, string) error { return nil }
func (s *stubRoomService) BulkSetImage(context.Context, string) (int, error) {
	return 0, nil
}

func TestRoomHandler_List_FiltersDeletedRooms(t *testing.T) {
	e := newTestEcho()
	now := time.Now()
	handler := NewRoomHandler(&stubRoomService{
		allFn: func(context.Context) ([]domain.Room, error) {
			return []domain.Room{
				{ID: "r1", City: "Madrid"},
				{ID: "r2", City: "Madrid", DeletedAt: &now},
				{ID: "r3", City: "Sevilla"},
			}, nil
		},
	})

	// Anonymous request: the listing is public.
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rooms []domain.Room
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 visible rooms, got %d", len(rooms))
	}
	for _, r := range rooms {
		if r.ID == "r2" {
			t.Fatal("deleted room must not be listed")
		}
	}
}

func TestRoomHandler_List_EmptyIsOK(t *testing.T) {
	e := newTestEcho()
	handler := NewRoomHandler(&stubRoomService{
		allFn: func(context.Context) ([]domain.Room, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty json array, got %q", body)
	}
}
