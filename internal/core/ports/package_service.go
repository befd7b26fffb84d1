package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// PackageService is a thin pass-through over the package repository.
type PackageService interface {
	GetAll(ctx context.Context) ([]bson.M, error)
	GetByID(ctx context.Context, id string) (bson.M, error)
	Create(ctx context.Context, doc bson.M) (string, error)
}
