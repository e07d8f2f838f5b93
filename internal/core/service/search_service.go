package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// SearchService answers the public room search: city match, availability on
// the requested move-in date, own rooms excluded, cheapest first.
type SearchService struct {
	rooms   ports.RoomRepository
	rentals ports.RentalRepository
	log     zerolog.Logger
}

func NewSearchService(rooms ports.RoomRepository, rentals ports.RentalRepository, log zerolog.Logger) *SearchService {
	return &SearchService{rooms: rooms, rentals: rentals, log: log}
}

func (s *SearchService) Search(ctx context.Context, in ports.SearchInput) ([]ports.RoomAvailability, error) {
	var (
		rooms   []domain.Room
		rentals []domain.Rental
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = s.rooms.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rentals, err = s.rentals.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRoom := make(map[string][]domain.Rental, len(rooms))
	for _, r := range rentals {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}

	viewer := normalizeEmail(in.ViewerEmail)
	city := strings.TrimSpace(in.City)

	results := make([]ports.RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		if room.Deleted() {
			continue
		}
		if city != "" && !strings.EqualFold(room.City, city) {
			continue
		}
		if viewer != "" && room.OwnerEmail == viewer {
			continue
		}

		availability := domain.ComputeAvailability(byRoom[room.ID])
		if !in.MoveIn.IsZero() && !availability.AvailableOn(in.MoveIn) {
			continue
		}

		results = append(results, ports.RoomAvailability{
			Room:          room,
			AvailableFrom: availability.From,
			Occupied:      availability.Ongoing,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Room.Price < results[j].Room.Price
	})

	s.log.Debug().Str("city", city).Int("results", len(results)).Msg("search completed")
	return results, nil
}
