package mongo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSchemaIndexes_CoversEveryCollection(t *testing.T) {
	want := map[string]bool{
		collectionUsers:    false,
		collectionRooms:    false,
		collectionRequests: false,
		collectionRentals:  false,
	}

	for _, s := range schemaIndexes() {
		seen, ok := want[s.collection]
		if !ok {
			t.Errorf("unexpected collection %q in schema", s.collection)
			continue
		}
		if seen {
			t.Errorf("collection %q declared twice", s.collection)
		}
		want[s.collection] = true

		if len(s.indexes) == 0 {
			t.Errorf("collection %q declares no indexes", s.collection)
		}
	}

	for name, seen := range want {
		if !seen {
			t.Errorf("collection %q missing from schema", name)
		}
	}
}

func TestSchemaIndexes_UniqueEmailIndex(t *testing.T) {
	for _, s := range schemaIndexes() {
		if s.collection != collectionUsers {
			continue
		}
		for _, idx := range s.indexes {
			keys, ok := idx.Keys.(bson.D)
			if !ok || len(keys) == 0 || keys[0].Key != "email" {
				continue
			}
			if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
				t.Fatal("email index must be unique: it backstops the register race")
			}
			return
		}
	}
	t.Fatal("no email index declared on the users collection")
}

func TestSchemaIndexes_IsDeterministic(t *testing.T) {
	// Startup reapplies the schema every time; the declaration must not
	// drift between calls.
	if !reflect.DeepEqual(schemaIndexes(), schemaIndexes()) {
		t.Fatal("schema declaration must be identical on every call")
	}
}
