package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// RentalService implements rental lookups and the finish transition.
type RentalService struct {
	rentals ports.RentalRepository
	rooms   ports.RoomRepository
	log     zerolog.Logger
}

func NewRentalService(rentals ports.RentalRepository, rooms ports.RoomRepository, log zerolog.Logger) *RentalService {
	return &RentalService{rentals: rentals, rooms: rooms, log: log}
}

func (s *RentalService) ActiveByRoom(ctx context.Context, roomID string) (*domain.Rental, error) {
	return s.rentals.FindActiveByRoom(ctx, roomID)
}

func (s *RentalService) ByTenant(ctx context.Context, email string) ([]domain.Rental, error) {
	return s.rentals.FindByTenant(ctx, normalizeEmail(email))
}

// Finish ends the rental: active=false, end=end. A zero end defaults to
// now. Finishing an already finished rental overwrites its end date, same
// as a full-record put. Only the tenant or the room owner may finish;
// an empty callerEmail skips the check.
func (s *RentalService) Finish(ctx context.Context, id string, end time.Time, callerEmail string) (*domain.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller := normalizeEmail(callerEmail); caller != "" && rental.TenantEmail != caller {
		room, err := s.rooms.FindByID(ctx, rental.RoomID)
		if err != nil {
			return nil, fmt.Errorf("finish rental: %w", err)
		}
		if room.OwnerEmail != caller {
			return nil, domain.ErrForbidden
		}
	}

	if end.IsZero() {
		end = time.Now().UTC()
	}
	rental.Active = false
	rental.End = &end

	if err := s.rentals.Put(ctx, rental); err != nil {
		return nil, fmt.Errorf("finish rental: %w", err)
	}

	s.log.Info().Str("rental_id", id).Time("end", end).Msg("rental finished")
	return rental, nil
}
