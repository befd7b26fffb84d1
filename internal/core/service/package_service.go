package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/roamly/tour-booking-api/internal/core/ports"
)

// PackageService is a thin pass-through over the package repository.
type PackageService struct {
	repo ports.Repository
}

func NewPackageService(repo ports.Repository) *PackageService {
	return &PackageService{repo: repo}
}

func (s *PackageService) GetAll(ctx context.Context) ([]bson.M, error) {
	return s.repo.FindAll(ctx, nil)
}

func (s *PackageService) GetByID(ctx context.Context, id string) (bson.M, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PackageService) Create(ctx context.Context, doc bson.M) (string, error) {
	return s.repo.Create(ctx, doc)
}
