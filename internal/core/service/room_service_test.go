package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

func newRoomFixture() (*RoomService, *stubUserRepo, *stubRoomRepo, *stubRequestRepo, *stubRentalRepo, *stubGeocodeQueue) {
	users := newStubUserRepo()
	rooms := newStubRoomRepo()
	requests := newStubRequestRepo()
	rentals := newStubRentalRepo()
	queue := &stubGeocodeQueue{}

	svc := NewRoomService(rooms, users, requests, rentals, NewRoomLocks(), queue, discardLogger)
	return svc, users, rooms, requests, rentals, queue
}

func addUser(users *stubUserRepo, email string) {
	_ = users.Add(context.Background(), &domain.User{ID: email, Email: email, Role: domain.RoleUser})
}

func validRoomInput(owner string) ports.CreateRoomInput {
	return ports.CreateRoomInput{
		Address:    "Calle Mayor 12",
		City:       "Madrid",
		Lat:        40.4168,
		Lon:        -3.7038,
		Price:      450,
		OwnerEmail: owner,
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestRoomService_Create_Success(t *testing.T) {
	svc, users, rooms, _, _, _ := newRoomFixture()
	addUser(users, "owner@example.com")

	room, err := svc.Create(context.Background(), validRoomInput("owner@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if room.ID == "" {
		t.Error("expected a generated id")
	}
	if room.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}

	stored, err := rooms.FindByID(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("room not persisted: %v", err)
	}
	if stored.OwnerEmail != "owner@example.com" {
		t.Errorf("unexpected owner %q", stored.OwnerEmail)
	}
}

func TestRoomService_Create_UnknownOwner(t *testing.T) {
	svc, _, _, _, _, _ := newRoomFixture()

	_, err := svc.Create(context.Background(), validRoomInput("ghost@example.com"))
	if !errors.Is(err, domain.ErrOwnerNotFound) {
		t.Fatalf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestRoomService_Create_Validation(t *testing.T) {
	svc, users, _, _, _, _ := newRoomFixture()
	addUser(users, "owner@example.com")

	in := validRoomInput("owner@example.com")
	in.City = "  "
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank city: expected ErrValidation, got %v", err)
	}

	in = validRoomInput("owner@example.com")
	in.Price = 0
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero price: expected ErrValidation, got %v", err)
	}
}

func TestRoomService_Create_EnqueuesGeocodeWhenNoCoordinates(t *testing.T) {
	svc, users, _, _, _, queue := newRoomFixture()
	addUser(users, "owner@example.com")

	in := validRoomInput("owner@example.com")
	in.Lat, in.Lon = 0, 0
	room, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(queue.jobs) != 1 || queue.jobs[0] != room.ID {
		t.Errorf("expected one geocode job for %s, got %v", room.ID, queue.jobs)
	}

	// With coordinates supplied, no job is enqueued.
	if _, err := svc.Create(context.Background(), validRoomInput("owner@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.jobs) != 1 {
		t.Errorf("expected no additional geocode job, got %v", queue.jobs)
	}
}

// ---------------------------------------------------------------------------
// SoftDelete cascade tests
// ---------------------------------------------------------------------------

func TestRoomService_SoftDelete_Cascade(t *testing.T) {
	svc, users, rooms, requests, rentals, _ := newRoomFixture()
	addUser(users, "owner@example.com")

	room, _ := svc.Create(context.Background(), validRoomInput("owner@example.com"))

	pending := &domain.Request{ID: "req-pending", RoomID: room.ID, RequesterEmail: "a@example.com", State: domain.RequestPending}
	rejected := &domain.Request{ID: "req-rejected", RoomID: room.ID, RequesterEmail: "b@example.com", State: domain.RequestRejected}
	_ = requests.Add(context.Background(), pending)
	_ = requests.Add(context.Background(), rejected)

	_ = rentals.Add(context.Background(), &domain.Rental{ID: "rent-1", RoomID: room.ID, TenantEmail: "c@example.com", Active: true})

	if err := svc.SoftDelete(context.Background(), room.ID, "owner@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := rooms.FindByID(context.Background(), room.ID)
	if !stored.Deleted() {
		t.Error("room must be marked deleted")
	}

	if got := requests.stateOf("req-pending"); got != domain.RequestCancelled {
		t.Errorf("pending request must be cancelled, got %q", got)
	}
	// Settled requests keep their state.
	if got := requests.stateOf("req-rejected"); got != domain.RequestRejected {
		t.Errorf("rejected request must stay rejected, got %q", got)
	}

	rental, _ := rentals.FindByID(context.Background(), "rent-1")
	if rental.Active {
		t.Error("active rental must be finished")
	}
	if rental.End == nil {
		t.Error("finished rental must have an end date")
	}
}

func TestRoomService_SoftDelete_NotOwner(t *testing.T) {
	svc, users, _, _, _, _ := newRoomFixture()
	addUser(users, "owner@example.com")

	room, _ := svc.Create(context.Background(), validRoomInput("owner@example.com"))

	err := svc.SoftDelete(context.Background(), room.ID, "intruder@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRoomService_SoftDelete_AlreadyDeletedIsNoop(t *testing.T) {
	svc, users, rooms, _, _, _ := newRoomFixture()
	addUser(users, "owner@example.com")

	room, _ := svc.Create(context.Background(), validRoomInput("owner@example.com"))
	if err := svc.SoftDelete(context.Background(), room.ID, "owner@example.com"); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}

	stored, _ := rooms.FindByID(context.Background(), room.ID)
	firstDeletedAt := *stored.DeletedAt

	time.Sleep(2 * time.Millisecond)
	if err := svc.SoftDelete(context.Background(), room.ID, "owner@example.com"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}

	stored, _ = rooms.FindByID(context.Background(), room.ID)
	if !stored.DeletedAt.Equal(firstDeletedAt) {
		t.Error("second delete must not change the deletion timestamp")
	}
}

func TestRoomService_SoftDelete_PartialCascadeIsConsistencyError(t *testing.T) {
	svc, users, rooms, requests, _, _ := newRoomFixture()
	addUser(users, "owner@example.com")

	room, _ := svc.Create(context.Background(), validRoomInput("owner@example.com"))
	_ = requests.Add(context.Background(), &domain.Request{ID: "req-1", RoomID: room.ID, State: domain.RequestPending})

	requests.putErr = errors.New("db unavailable")

	err := svc.SoftDelete(context.Background(), room.ID, "owner@example.com")
	if !errors.Is(err, domain.ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}

	// The room write happened before the failure and stays applied.
	stored, _ := rooms.FindByID(context.Background(), room.ID)
	if !stored.Deleted() {
		t.Error("room must stay deleted after a partial cascade")
	}
}
