package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection and field names are the stable persisted schema carried over
// from the legacy system; renaming them would orphan existing data. Go-side
// names stay English, the bson tags keep the legacy spelling.
const (
	collectionUsers    = "usuario"
	collectionRooms    = "habitacion"
	collectionRequests = "solicitud"
	collectionRentals  = "alquiler"
)

// collectionIndexes pairs a collection with the secondary indexes its
// repository relies on.
type collectionIndexes struct {
	collection string
	indexes    []mongo.IndexModel
}

// schemaIndexes declares the full index set. The declaration is pure data:
// building it has no side effects, so applying it any number of times
// yields the same schema.
func schemaIndexes() []collectionIndexes {
	return []collectionIndexes{
		{collectionUsers, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{collectionRooms, []mongo.IndexModel{
			{Keys: bson.D{{Key: "emailPropie", Value: 1}}},
			{Keys: bson.D{{Key: "ciudad", Value: 1}}},
			{Keys: bson.D{{Key: "precio", Value: 1}}},
		}},
		{collectionRequests, []mongo.IndexModel{
			{Keys: bson.D{{Key: "idHabi", Value: 1}}},
			{Keys: bson.D{{Key: "emailInquiPosible", Value: 1}}},
			{Keys: bson.D{{Key: "estado", Value: 1}}},
		}},
		{collectionRentals, []mongo.IndexModel{
			{Keys: bson.D{{Key: "idHabi", Value: 1}}},
			{Keys: bson.D{{Key: "emailInqui", Value: 1}}},
			{Keys: bson.D{{Key: "activo", Value: 1}}},
		}},
	}
}

// EnsureSchema idempotently creates every secondary index the repositories
// rely on. Safe to run on every startup: index creation skips indexes that
// already exist and never touches data, so schema upgrades stay additive.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, s := range schemaIndexes() {
		if _, err := db.Collection(s.collection).Indexes().CreateMany(ctx, s.indexes); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.collection, err)
		}
	}
	return nil
}

// millisToTime converts the legacy Date.now() millisecond timestamps.
func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func millisPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := millisToTime(*ms)
	return &t
}

func timePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
