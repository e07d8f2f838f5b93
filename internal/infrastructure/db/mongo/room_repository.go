package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RoomRepository implements ports.RoomRepository on the habitacion
// collection.
type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection(collectionRooms)}
}

type mongoRoom struct {
	ID         string  `bson:"_id"`
	Address    string  `bson:"direccion"`
	City       string  `bson:"ciudad"`
	Lat        float64 `bson:"lat"`
	Lon        float64 `bson:"lon"`
	Price      float64 `bson:"precio"`
	Image      string  `bson:"imagenBase64,omitempty"`
	OwnerEmail string  `bson:"emailPropie"`
	CreatedAt  int64   `bson:"createdAt"`
	DeletedAt  *int64  `bson:"deletedAt"`
}

func toMongoRoom(r *domain.Room) mongoRoom {
	return mongoRoom{
		ID:         r.ID,
		Address:    r.Address,
		City:       r.City,
		Lat:        r.Lat,
		Lon:        r.Lon,
		Price:      r.Price,
		Image:      r.Image,
		OwnerEmail: r.OwnerEmail,
		CreatedAt:  r.CreatedAt.UnixMilli(),
		DeletedAt:  timePtrToMillis(r.DeletedAt),
	}
}

func (m mongoRoom) toDomain() domain.Room {
	return domain.Room{
		ID:         m.ID,
		Address:    m.Address,
		City:       m.City,
		Lat:        m.Lat,
		Lon:        m.Lon,
		Price:      m.Price,
		Image:      m.Image,
		OwnerEmail: m.OwnerEmail,
		CreatedAt:  millisToTime(m.CreatedAt),
		DeletedAt:  millisPtr(m.DeletedAt),
	}
}

func (r *RoomRepository) Add(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoRoom(room)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoRoom
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	room := m.toDomain()
	return &room, nil
}

func (r *RoomRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]domain.Room, error) {
	return r.find(ctx, bson.M{"emailPropie": ownerEmail, "deletedAt": nil})
}

func (r *RoomRepository) All(ctx context.Context) ([]domain.Room, error) {
	return r.find(ctx, bson.M{})
}

func (r *RoomRepository) find(ctx context.Context, filter bson.M) ([]domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []domain.Room
	for cur.Next(ctx) {
		var m mongoRoom
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, m.toDomain())
	}
	return rooms, cur.Err()
}

func (r *RoomRepository) Put(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": room.ID}, toMongoRoom(room), opts); err != nil {
		return fmt.Errorf("put room: %w", err)
	}
	return nil
}

// BulkSetImage scans every room and writes the new image reference back,
// one record at a time. Returns how many records were updated.
func (r *RoomRepository) BulkSetImage(ctx context.Context, image string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("scan rooms: %w", err)
	}
	defer cur.Close(ctx)

	updated := 0
	for cur.Next(ctx) {
		var m mongoRoom
		if err := cur.Decode(&m); err != nil {
			return updated, fmt.Errorf("decode room: %w", err)
		}
		m.Image = image
		if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m); err != nil {
			return updated, fmt.Errorf("update room %s: %w", m.ID, err)
		}
		updated++
	}
	return updated, cur.Err()
}
