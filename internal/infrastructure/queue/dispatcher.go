package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/roomly/rental-system/internal/api/metrics"
	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes geocode backfill jobs to a fixed set of workers using
// consistent hashing on the room id, so repeated jobs for the same room
// never race each other's writes.
type Dispatcher struct {
	workers  []chan ports.GeocodeJob
	geocoder ports.Geocoder
	rooms    ports.RoomRepository
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, geocoder ports.Geocoder, rooms ports.RoomRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.GeocodeJob, numWorkers),
		geocoder: geocoder,
		rooms:    rooms,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.GeocodeJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its room. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.GeocodeJob) {
	idx := d.shardIndex(job.RoomID)
	d.workers[idx] <- job
	metrics.GeocodeQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a room id deterministically to a worker index.
func (d *Dispatcher) shardIndex(roomID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(roomID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.GeocodeJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.GeocodeQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.process(ctx, job); err != nil {
				d.log.Warn().Err(err).
					Str("room_id", job.RoomID).
					Int("worker_id", id).
					Msg("geocode backfill failed")
			}
		}
	}
}

// process resolves the coordinates and writes them back. A room that was
// deleted, re-located, or already geocoded since the job was queued is
// skipped.
func (d *Dispatcher) process(ctx context.Context, job ports.GeocodeJob) error {
	lat, lon, err := d.geocoder.Geocode(ctx, job.Address, job.City)
	if err != nil {
		metrics.GeocodeErrorsTotal.WithLabelValues("lookup").Inc()
		return err
	}

	room, err := d.rooms.FindByID(ctx, job.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return nil
		}
		metrics.GeocodeErrorsTotal.WithLabelValues("load_room").Inc()
		return err
	}
	if room.Deleted() || room.Lat != 0 || room.Lon != 0 {
		return nil
	}

	room.Lat = lat
	room.Lon = lon
	if err := d.rooms.Put(ctx, room); err != nil {
		metrics.GeocodeErrorsTotal.WithLabelValues("update_room").Inc()
		return err
	}

	d.log.Info().
		Str("room_id", room.ID).
		Float64("lat", lat).
		Float64("lon", lon).
		Msg("room coordinates backfilled")
	return nil
}
