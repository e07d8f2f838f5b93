package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomly/rental-system/internal/core/ports"
)

type stubSearchService struct {
	lastInput ports.SearchInput
}

func (s *stubSearchService) Search(_ context.Context, in ports.SearchInput) ([]ports.RoomAvailability, error) {
	s.lastInput = in
	return []ports.RoomAvailability{}, nil
}

func TestSearchHandler_MissingCity(t *testing.T) {
	e := newTestEcho()
	handler := NewSearchHandler(&stubSearchService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Search(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSearchHandler_NoMoveInPassesZeroTime(t *testing.T) {
	e := newTestEcho()
	stub := &stubSearchService{}
	handler := NewSearchHandler(stub)

	// Without a move-in date the service must see the zero time, which
	// lists occupied rooms too instead of filtering against today.
	req := httptest.NewRequest(http.MethodGet, "/v1/search?city=Madrid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !stub.lastInput.MoveIn.IsZero() {
		t.Fatalf("expected zero MoveIn, got %v", stub.lastInput.MoveIn)
	}
	if stub.lastInput.City != "Madrid" {
		t.Fatalf("unexpected city %q", stub.lastInput.City)
	}
}

func TestSearchHandler_ParsesDateOnlyMoveIn(t *testing.T) {
	e := newTestEcho()
	stub := &stubSearchService{}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/search?city=Madrid&move_in=2024-07-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !stub.lastInput.MoveIn.Equal(want) {
		t.Fatalf("expected MoveIn %v, got %v", want, stub.lastInput.MoveIn)
	}
}

func TestSearchHandler_AnonymousHasNoViewer(t *testing.T) {
	e := newTestEcho()
	stub := &stubSearchService{}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/search?city=Madrid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastInput.ViewerEmail != "" {
		t.Fatalf("anonymous search must carry no viewer, got %q", stub.lastInput.ViewerEmail)
	}

	// A logged-in caller's identity flows through for own-room exclusion.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/search?city=Madrid", nil), httptest.NewRecorder())
	c.Set("email", "ana@example.com")
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastInput.ViewerEmail != "ana@example.com" {
		t.Fatalf("expected viewer ana@example.com, got %q", stub.lastInput.ViewerEmail)
	}
}
