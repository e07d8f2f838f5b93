package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roomly/rental-system/internal/core/domain"
)

// RentalRepository implements ports.RentalRepository on the alquiler
// collection.
type RentalRepository struct {
	col *mongo.Collection
}

func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{col: db.Collection(collectionRentals)}
}

type mongoRental struct {
	ID          string `bson:"_id"`
	RoomID      string `bson:"idHabi"`
	TenantEmail string `bson:"emailInqui"`
	Start       int64  `bson:"fInicio"`
	End         *int64 `bson:"fFin"`
	Active      bool   `bson:"activo"`
	CreatedAt   int64  `bson:"createdAt"`
}

func toMongoRental(r *domain.Rental) mongoRental {
	return mongoRental{
		ID:          r.ID,
		RoomID:      r.RoomID,
		TenantEmail: r.TenantEmail,
		Start:       r.Start.UnixMilli(),
		End:         timePtrToMillis(r.End),
		Active:      r.Active,
		CreatedAt:   r.CreatedAt.UnixMilli(),
	}
}

func (m mongoRental) toDomain() domain.Rental {
	return domain.Rental{
		ID:          m.ID,
		RoomID:      m.RoomID,
		TenantEmail: m.TenantEmail,
		Start:       millisToTime(m.Start),
		End:         millisPtr(m.End),
		Active:      m.Active,
		CreatedAt:   millisToTime(m.CreatedAt),
	}
}

func (r *RentalRepository) Add(ctx context.Context, rental *domain.Rental) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoRental(rental)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id string) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoRental
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}
	rental := m.toDomain()
	return &rental, nil
}

func (r *RentalRepository) FindByRoom(ctx context.Context, roomID string) ([]domain.Rental, error) {
	return r.find(ctx, bson.M{"idHabi": roomID})
}

// FindActiveByRoom returns the single active rental for the room. The
// system never allows two; the first match wins if legacy data disagrees.
func (r *RentalRepository) FindActiveByRoom(ctx context.Context, roomID string) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoRental
	err := r.col.FindOne(ctx, bson.M{"idHabi": roomID, "activo": true}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find active rental: %w", err)
	}
	rental := m.toDomain()
	return &rental, nil
}

func (r *RentalRepository) FindByTenant(ctx context.Context, email string) ([]domain.Rental, error) {
	return r.find(ctx, bson.M{"emailInqui": email})
}

func (r *RentalRepository) All(ctx context.Context) ([]domain.Rental, error) {
	return r.find(ctx, bson.M{})
}

func (r *RentalRepository) find(ctx context.Context, filter bson.M) ([]domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find rentals: %w", err)
	}
	defer cur.Close(ctx)

	var rentals []domain.Rental
	for cur.Next(ctx) {
		var m mongoRental
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode rental: %w", err)
		}
		rentals = append(rentals, m.toDomain())
	}
	return rentals, cur.Err()
}

func (r *RentalRepository) Put(ctx context.Context, rental *domain.Rental) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": rental.ID}, toMongoRental(rental), opts); err != nil {
		return fmt.Errorf("put rental: %w", err)
	}
	return nil
}
