package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// GeocodeQueue is the interface the room service uses to hand off
// coordinate backfills. Nil disables backfilling.
type GeocodeQueue interface {
	Enqueue(job ports.GeocodeJob)
}

// RoomService implements room listing, lookup, and the soft-delete cascade.
type RoomService struct {
	rooms    ports.RoomRepository
	users    ports.UserRepository
	requests ports.RequestRepository
	rentals  ports.RentalRepository
	locks    *RoomLocks
	geocode  GeocodeQueue
	log      zerolog.Logger
}

func NewRoomService(
	rooms ports.RoomRepository,
	users ports.UserRepository,
	requests ports.RequestRepository,
	rentals ports.RentalRepository,
	locks *RoomLocks,
	geocode GeocodeQueue,
	log zerolog.Logger,
) *RoomService {
	return &RoomService{
		rooms:    rooms,
		users:    users,
		requests: requests,
		rentals:  rentals,
		locks:    locks,
		geocode:  geocode,
		log:      log,
	}
}

func (s *RoomService) Create(ctx context.Context, in ports.CreateRoomInput) (*domain.Room, error) {
	address := strings.TrimSpace(in.Address)
	city := strings.TrimSpace(in.City)
	owner := normalizeEmail(in.OwnerEmail)

	if address == "" || city == "" || owner == "" {
		return nil, fmt.Errorf("%w: address, city and owner are required", domain.ErrValidation)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than 0", domain.ErrValidation)
	}

	// Owner must resolve to an existing user at creation time.
	if _, err := s.users.FindByEmail(ctx, owner); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("create room: %w", err)
	}

	room := &domain.Room{
		ID:         uuid.NewString(),
		Address:    address,
		City:       city,
		Lat:        in.Lat,
		Lon:        in.Lon,
		Price:      in.Price,
		Image:      in.Image,
		OwnerEmail: owner,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.rooms.Add(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info().Str("room_id", room.ID).Str("owner", owner).Str("city", city).Msg("room created")

	if room.Lat == 0 && room.Lon == 0 && s.geocode != nil {
		s.geocode.Enqueue(ports.GeocodeJob{RoomID: room.ID, Address: address, City: city})
	}

	return room, nil
}

func (s *RoomService) ByOwner(ctx context.Context, ownerEmail string) ([]domain.Room, error) {
	return s.rooms.FindByOwner(ctx, normalizeEmail(ownerEmail))
}

func (s *RoomService) ByID(ctx context.Context, id string) (*domain.Room, error) {
	return s.rooms.FindByID(ctx, id)
}

func (s *RoomService) All(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.All(ctx)
}

// SoftDelete marks the room deleted and cascades: pending requests become
// cancelled and any active rental is ended with end=now. The sequence runs
// under the room's lock; a failure after the room write is a consistency
// error (the room stays deleted, no automatic rollback) that is logged
// distinctly and surfaced to the caller.
func (s *RoomService) SoftDelete(ctx context.Context, id, callerEmail string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if room.Deleted() {
		return nil
	}
	if callerEmail != "" && room.OwnerEmail != normalizeEmail(callerEmail) {
		return domain.ErrForbidden
	}

	now := time.Now().UTC()
	room.DeletedAt = &now
	if err := s.rooms.Put(ctx, room); err != nil {
		return fmt.Errorf("soft-delete room: %w", err)
	}

	requests, err := s.requests.FindByRoom(ctx, id)
	if err != nil {
		return s.cascadeError(id, "load requests", err)
	}
	for i := range requests {
		req := requests[i]
		if req.State != domain.RequestPending {
			continue
		}
		req.State = domain.RequestCancelled
		if err := s.requests.Put(ctx, &req); err != nil {
			return s.cascadeError(id, "cancel request "+req.ID, err)
		}
	}

	active, err := s.rentals.FindActiveByRoom(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrRentalNotFound) {
		return s.cascadeError(id, "load active rental", err)
	}
	if active != nil {
		active.Active = false
		active.End = &now
		if err := s.rentals.Put(ctx, active); err != nil {
			return s.cascadeError(id, "finish rental "+active.ID, err)
		}
	}

	s.log.Info().Str("room_id", id).Msg("room soft-deleted")
	return nil
}

// cascadeError wraps a partial soft-delete failure. The room is already
// marked deleted at this point, so the state needs manual reconciliation.
func (s *RoomService) cascadeError(roomID, step string, err error) error {
	s.log.Error().Err(err).
		Str("room_id", roomID).
		Str("step", step).
		Msg("soft-delete cascade partially applied")
	return fmt.Errorf("%w: soft-delete cascade (%s): %v", domain.ErrConsistency, step, err)
}

func (s *RoomService) BulkSetImage(ctx context.Context, image string) (int, error) {
	n, err := s.rooms.BulkSetImage(ctx, image)
	if err != nil {
		return n, fmt.Errorf("bulk set image: %w", err)
	}
	s.log.Info().Int("rooms", n).Msg("room images replaced")
	return n, nil
}
