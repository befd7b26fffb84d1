package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the minimal document-store surface the repositories build on.
// FindOne returns (nil, nil) when no document matches; driver errors propagate
// unwrapped and surface at the HTTP boundary as server errors.
type Collection interface {
	Find(ctx context.Context, filter any) ([]bson.M, error)
	FindOne(ctx context.Context, filter any) (bson.M, error)
	InsertOne(ctx context.Context, doc any) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter, update any) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any) (*mongo.DeleteResult, error)
}

// collection adapts a *mongo.Collection to the Collection interface.
type collection struct {
	col *mongo.Collection
}

// NewCollection wraps a driver collection handle.
func NewCollection(col *mongo.Collection) Collection {
	return &collection{col: col}
}

func (c *collection) Find(ctx context.Context, filter any) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := c.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *collection) FindOne(ctx context.Context, filter any) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

func (c *collection) InsertOne(ctx context.Context, doc any) (*mongo.InsertOneResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return c.col.InsertOne(ctx, doc)
}

func (c *collection) UpdateOne(ctx context.Context, filter, update any) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return c.col.UpdateOne(ctx, filter, update)
}

func (c *collection) DeleteOne(ctx context.Context, filter any) (*mongo.DeleteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return c.col.DeleteOne(ctx, filter)
}
