package repositories

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// newDocumentID returns a fresh ObjectID rendered as hex. IDs are stored as strings.
func newDocumentID() string {
	return primitive.NewObjectID().Hex()
}

// idValues returns the _id forms an id may be stored under: the string itself and,
// when it is valid hex, the ObjectID written by older clients.
func idValues(id string) bson.A {
	values := bson.A{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		values = append(values, oid)
	}
	return values
}

func idFilter(id string) bson.M {
	return bson.M{"_id": bson.M{"$in": idValues(id)}}
}

// decodeAll drains cur into typed records. Documents that do not decode are
// logged and skipped rather than failing the whole read.
func decodeAll[T any](ctx context.Context, cur *mongo.Cursor, collection string) ([]T, error) {
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			log.Warn().
				Err(err).
				Str("collection", collection).
				Str("document_id", cur.Current.Lookup("_id").String()).
				Msg("skipping malformed document")
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
