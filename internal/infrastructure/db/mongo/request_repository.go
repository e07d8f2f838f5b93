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

// RequestRepository implements ports.RequestRepository on the solicitud
// collection.
type RequestRepository struct {
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{col: db.Collection(collectionRequests)}
}

type mongoRequest struct {
	ID             string `bson:"_id"`
	RoomID         string `bson:"idHabi"`
	RequesterEmail string `bson:"emailInquiPosible"`
	State          string `bson:"estado"`
	CreatedAt      int64  `bson:"fechaSolicitud"`
	DeletedAt      *int64 `bson:"deletedAt"`
}

func toMongoRequest(r *domain.Request) mongoRequest {
	return mongoRequest{
		ID:             r.ID,
		RoomID:         r.RoomID,
		RequesterEmail: r.RequesterEmail,
		State:          string(r.State),
		CreatedAt:      r.CreatedAt.UnixMilli(),
		DeletedAt:      timePtrToMillis(r.DeletedAt),
	}
}

func (m mongoRequest) toDomain() domain.Request {
	return domain.Request{
		ID:             m.ID,
		RoomID:         m.RoomID,
		RequesterEmail: m.RequesterEmail,
		State:          domain.RequestState(m.State),
		CreatedAt:      millisToTime(m.CreatedAt),
		DeletedAt:      millisPtr(m.DeletedAt),
	}
}

func (r *RequestRepository) Add(ctx context.Context, request *domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoRequest(request)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	request := m.toDomain()
	return &request, nil
}

func (r *RequestRepository) FindByRoom(ctx context.Context, roomID string) ([]domain.Request, error) {
	return r.find(ctx, bson.M{"idHabi": roomID, "deletedAt": nil})
}

func (r *RequestRepository) FindByRequester(ctx context.Context, email string) ([]domain.Request, error) {
	return r.find(ctx, bson.M{"emailInquiPosible": email, "deletedAt": nil})
}

func (r *RequestRepository) find(ctx context.Context, filter bson.M) ([]domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	defer cur.Close(ctx)

	var requests []domain.Request
	for cur.Next(ctx) {
		var m mongoRequest
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		requests = append(requests, m.toDomain())
	}
	return requests, cur.Err()
}

func (r *RequestRepository) Put(ctx context.Context, request *domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": request.ID}, toMongoRequest(request), opts); err != nil {
		return fmt.Errorf("put request: %w", err)
	}
	return nil
}
