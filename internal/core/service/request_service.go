package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// RequestService drives the request state machine and the accept
// transaction.
type RequestService struct {
	requests ports.RequestRepository
	rooms    ports.RoomRepository
	rentals  ports.RentalRepository
	locks    *RoomLocks
	log      zerolog.Logger
}

func NewRequestService(
	requests ports.RequestRepository,
	rooms ports.RoomRepository,
	rentals ports.RentalRepository,
	locks *RoomLocks,
	log zerolog.Logger,
) *RequestService {
	return &RequestService{requests: requests, rooms: rooms, rentals: rentals, locks: locks, log: log}
}

func (s *RequestService) Create(ctx context.Context, roomID, requesterEmail string) (*domain.Request, error) {
	email := normalizeEmail(requesterEmail)
	if roomID == "" || email == "" {
		return nil, fmt.Errorf("%w: room id and requester are required", domain.ErrValidation)
	}

	// The duplicate-pending check must not interleave with a concurrent
	// create for the same room.
	unlock := s.locks.Lock(roomID)
	defer unlock()

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Deleted() {
		return nil, domain.ErrRoomNotFound
	}
	if room.OwnerEmail == email {
		return nil, domain.ErrSelfRequest
	}

	existing, err := s.requests.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for _, r := range existing {
		if r.RequesterEmail == email && r.State == domain.RequestPending {
			return nil, domain.ErrDuplicatePending
		}
	}

	request := &domain.Request{
		ID:             uuid.NewString(),
		RoomID:         roomID,
		RequesterEmail: email,
		State:          domain.RequestPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.requests.Add(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.log.Info().Str("request_id", request.ID).Str("room_id", roomID).Str("requester", email).Msg("request created")
	return request, nil
}

func (s *RequestService) ByRoom(ctx context.Context, roomID string) ([]domain.Request, error) {
	return s.requests.FindByRoom(ctx, roomID)
}

func (s *RequestService) ByRoomAndUser(ctx context.Context, roomID, email string) ([]domain.Request, error) {
	all, err := s.requests.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	matched := make([]domain.Request, 0, len(all))
	for _, r := range all {
		if r.RequesterEmail == email {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *RequestService) Mine(ctx context.Context, email string) ([]domain.Request, error) {
	return s.requests.FindByRequester(ctx, normalizeEmail(email))
}

// UpdateState applies a manual transition. Rejection is reserved to the
// room owner, cancellation to the requester; acceptance must go through
// Accept.
func (s *RequestService) UpdateState(ctx context.Context, id string, next domain.RequestState, callerEmail string) (*domain.Request, error) {
	if next == domain.RequestAccepted {
		return nil, fmt.Errorf("%w: acceptance goes through the accept transaction", domain.ErrValidation)
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.State.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, request.State, next)
	}

	caller := normalizeEmail(callerEmail)
	switch next {
	case domain.RequestRejected:
		room, err := s.rooms.FindByID(ctx, request.RoomID)
		if err != nil {
			return nil, fmt.Errorf("update request: %w", err)
		}
		if caller != "" && room.OwnerEmail != caller {
			return nil, domain.ErrForbidden
		}
	case domain.RequestCancelled:
		if caller != "" && request.RequesterEmail != caller {
			return nil, domain.ErrForbidden
		}
	}

	request.State = next
	if err := s.requests.Put(ctx, request); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}

	s.log.Info().Str("request_id", id).Str("state", string(next)).Msg("request state updated")
	return request, nil
}

// SoftDelete removes a rejected or cancelled request from the requester's
// view. The record itself is kept.
func (s *RequestService) SoftDelete(ctx context.Context, id, callerEmail string) error {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caller := normalizeEmail(callerEmail); caller != "" && request.RequesterEmail != caller {
		return domain.ErrForbidden
	}
	if request.State != domain.RequestRejected && request.State != domain.RequestCancelled {
		return fmt.Errorf("%w: only rejected or cancelled requests can be removed", domain.ErrValidation)
	}
	if request.Deleted() {
		return nil
	}

	now := time.Now().UTC()
	request.DeletedAt = &now
	if err := s.requests.Put(ctx, request); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

// Accept runs the central transaction, serialized per room:
//  1. the request must exist and be pending;
//  2. the room must have no active rental;
//  3. a new active rental is created (start=now, end unset);
//  4. the request becomes accepted;
//  5. the remaining pending siblings become rejected.
//
// A failure after step 3 leaves the records partially updated; there is no
// automatic rollback. Such failures wrap domain.ErrConsistency and are
// logged at error level for manual reconciliation.
func (s *RequestService) Accept(ctx context.Context, id, callerEmail string) (*domain.Rental, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(request.RoomID)
	defer unlock()

	// Re-read under the lock: a concurrent accept may have already
	// transitioned it.
	request, err = s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.State != domain.RequestPending {
		return nil, domain.ErrRequestNotPending
	}

	if caller := normalizeEmail(callerEmail); caller != "" {
		room, err := s.rooms.FindByID(ctx, request.RoomID)
		if err != nil {
			return nil, fmt.Errorf("accept request: %w", err)
		}
		if room.OwnerEmail != caller {
			return nil, domain.ErrForbidden
		}
	}

	if _, err := s.rentals.FindActiveByRoom(ctx, request.RoomID); err == nil {
		return nil, domain.ErrRoomAlreadyRented
	} else if !errors.Is(err, domain.ErrRentalNotFound) {
		return nil, fmt.Errorf("accept request: %w", err)
	}

	now := time.Now().UTC()
	rental := &domain.Rental{
		ID:          uuid.NewString(),
		RoomID:      request.RoomID,
		TenantEmail: request.RequesterEmail,
		Start:       now,
		Active:      true,
		CreatedAt:   now,
	}
	if err := s.rentals.Add(ctx, rental); err != nil {
		return nil, fmt.Errorf("accept request: create rental: %w", err)
	}

	request.State = domain.RequestAccepted
	if err := s.requests.Put(ctx, request); err != nil {
		return nil, s.acceptError(id, "mark accepted", err)
	}

	siblings, err := s.requests.FindByRoom(ctx, request.RoomID)
	if err != nil {
		return nil, s.acceptError(id, "load siblings", err)
	}
	for i := range siblings {
		sib := siblings[i]
		if sib.ID == request.ID || sib.State != domain.RequestPending {
			continue
		}
		sib.State = domain.RequestRejected
		if err := s.requests.Put(ctx, &sib); err != nil {
			return nil, s.acceptError(id, "reject sibling "+sib.ID, err)
		}
	}

	s.log.Info().
		Str("request_id", request.ID).
		Str("room_id", request.RoomID).
		Str("tenant", rental.TenantEmail).
		Str("rental_id", rental.ID).
		Msg("request accepted")

	return rental, nil
}

// acceptError wraps a partial accept failure. The rental already exists at
// this point, so the remaining request records need manual reconciliation.
func (s *RequestService) acceptError(requestID, step string, err error) error {
	s.log.Error().Err(err).
		Str("request_id", requestID).
		Str("step", step).
		Msg("accept transaction partially applied")
	return fmt.Errorf("%w: accept (%s): %v", domain.ErrConsistency, step, err)
}
