package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	byEmail map[string]*domain.User
	addErr  error // if set, Add returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Add(_ context.Context, u *domain.User) error {
	if r.addErr != nil {
		return r.addErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrUserExists
	}
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Put(_ context.Context, u *domain.User) error {
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

type stubRoomRepo struct {
	rooms  []*domain.Room // insertion order, soft-deleted included
	putErr error          // if set, Put returns this error
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{}
}

func (r *stubRoomRepo) Add(_ context.Context, room *domain.Room) error {
	for _, existing := range r.rooms {
		if existing.ID == room.ID {
			return domain.ErrDuplicateKey
		}
	}
	clone := *room
	r.rooms = append(r.rooms, &clone)
	return nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id string) (*domain.Room, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			clone := *room
			return &clone, nil
		}
	}
	return nil, domain.ErrRoomNotFound
}

func (r *stubRoomRepo) FindByOwner(_ context.Context, ownerEmail string) ([]domain.Room, error) {
	var matched []domain.Room
	for _, room := range r.rooms {
		if room.OwnerEmail == ownerEmail && !room.Deleted() {
			matched = append(matched, *room)
		}
	}
	return matched, nil
}

func (r *stubRoomRepo) All(_ context.Context) ([]domain.Room, error) {
	all := make([]domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		all = append(all, *room)
	}
	return all, nil
}

func (r *stubRoomRepo) Put(_ context.Context, room *domain.Room) error {
	if r.putErr != nil {
		return r.putErr
	}
	for i, existing := range r.rooms {
		if existing.ID == room.ID {
			clone := *room
			r.rooms[i] = &clone
			return nil
		}
	}
	clone := *room
	r.rooms = append(r.rooms, &clone)
	return nil
}

func (r *stubRoomRepo) BulkSetImage(_ context.Context, image string) (int, error) {
	for _, room := range r.rooms {
		room.Image = image
	}
	return len(r.rooms), nil
}

type stubRequestRepo struct {
	requests []*domain.Request // insertion order
	putErr   error             // if set, Put returns this error
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{}
}

func (r *stubRequestRepo) Add(_ context.Context, req *domain.Request) error {
	clone := *req
	r.requests = append(r.requests, &clone)
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.Request, error) {
	for _, req := range r.requests {
		if req.ID == id {
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

// FindByRoom skips soft-deleted requests, mirroring the real Mongo filter.
func (r *stubRequestRepo) FindByRoom(_ context.Context, roomID string) ([]domain.Request, error) {
	var matched []domain.Request
	for _, req := range r.requests {
		if req.RoomID == roomID && !req.Deleted() {
			matched = append(matched, *req)
		}
	}
	return matched, nil
}

func (r *stubRequestRepo) FindByRequester(_ context.Context, email string) ([]domain.Request, error) {
	var matched []domain.Request
	for _, req := range r.requests {
		if req.RequesterEmail == email && !req.Deleted() {
			matched = append(matched, *req)
		}
	}
	return matched, nil
}

func (r *stubRequestRepo) Put(_ context.Context, req *domain.Request) error {
	if r.putErr != nil {
		return r.putErr
	}
	for i, existing := range r.requests {
		if existing.ID == req.ID {
			clone := *req
			r.requests[i] = &clone
			return nil
		}
	}
	clone := *req
	r.requests = append(r.requests, &clone)
	return nil
}

// stateOf returns the stored state of a request, or "" when missing.
func (r *stubRequestRepo) stateOf(id string) domain.RequestState {
	for _, req := range r.requests {
		if req.ID == id {
			return req.State
		}
	}
	return ""
}

type stubRentalRepo struct {
	rentals []*domain.Rental
	addErr  error // if set, Add returns this error
}

func newStubRentalRepo() *stubRentalRepo {
	return &stubRentalRepo{}
}

func (r *stubRentalRepo) Add(_ context.Context, rental *domain.Rental) error {
	if r.addErr != nil {
		return r.addErr
	}
	clone := *rental
	r.rentals = append(r.rentals, &clone)
	return nil
}

func (r *stubRentalRepo) FindByID(_ context.Context, id string) (*domain.Rental, error) {
	for _, rental := range r.rentals {
		if rental.ID == id {
			clone := *rental
			return &clone, nil
		}
	}
	return nil, domain.ErrRentalNotFound
}

func (r *stubRentalRepo) FindByRoom(_ context.Context, roomID string) ([]domain.Rental, error) {
	var matched []domain.Rental
	for _, rental := range r.rentals {
		if rental.RoomID == roomID {
			matched = append(matched, *rental)
		}
	}
	return matched, nil
}

func (r *stubRentalRepo) FindActiveByRoom(_ context.Context, roomID string) (*domain.Rental, error) {
	for _, rental := range r.rentals {
		if rental.RoomID == roomID && rental.Active {
			clone := *rental
			return &clone, nil
		}
	}
	return nil, domain.ErrRentalNotFound
}

func (r *stubRentalRepo) FindByTenant(_ context.Context, email string) ([]domain.Rental, error) {
	var matched []domain.Rental
	for _, rental := range r.rentals {
		if rental.TenantEmail == email {
			matched = append(matched, *rental)
		}
	}
	return matched, nil
}

func (r *stubRentalRepo) All(_ context.Context) ([]domain.Rental, error) {
	all := make([]domain.Rental, 0, len(r.rentals))
	for _, rental := range r.rentals {
		all = append(all, *rental)
	}
	return all, nil
}

func (r *stubRentalRepo) Put(_ context.Context, rental *domain.Rental) error {
	for i, existing := range r.rentals {
		if existing.ID == rental.ID {
			clone := *rental
			r.rentals[i] = &clone
			return nil
		}
	}
	clone := *rental
	r.rentals = append(r.rentals, &clone)
	return nil
}

type stubGeocodeQueue struct {
	jobs []string // room IDs enqueued
}

func (q *stubGeocodeQueue) Enqueue(job ports.GeocodeJob) {
	q.jobs = append(q.jobs, job.RoomID)
}
