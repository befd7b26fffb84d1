package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// Repository is the uniform CRUD façade services build on. It is storage- and
// cache-agnostic: wire it over a plain Collection or a CachedCollection.
type Repository struct {
	coll Collection
}

// NewRepository builds a Repository over the given collection accessor.
func NewRepository(coll Collection) *Repository {
	return &Repository{coll: coll}
}

// FindAll returns every document matching filter; a nil filter matches all.
func (r *Repository) FindAll(ctx context.Context, filter bson.M) ([]bson.M, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.coll.Find(ctx, filter)
}

// FindByID looks a document up by its hex ObjectID. A malformed id yields
// domain.ErrInvalidID; a missing document yields (nil, nil).
func (r *Repository) FindByID(ctx context.Context, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.coll.FindOne(ctx, bson.M{"_id": oid})
}

// Create inserts doc and returns the inserted id as a hex string.
func (r *Repository) Create(ctx context.Context, doc bson.M) (string, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// Update applies doc as a $set to the document with the given id and returns
// the modified count.
func (r *Repository) Update(ctx context.Context, id string, doc bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": doc})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes the document with the given id. Deleting an absent document
// is an idempotent no-op with a zero count.
func (r *Repository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// decodeDoc unmarshals a raw document into out, rendering the ObjectID as its
// hex form first. The document is shallow-copied so a cached bson.M is never
// mutated.
func decodeDoc(doc bson.M, out any) error {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		clone := make(bson.M, len(doc))
		for k, v := range doc {
			clone[k] = v
		}
		clone["_id"] = oid.Hex()
		doc = clone
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
