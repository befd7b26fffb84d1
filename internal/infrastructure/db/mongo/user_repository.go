package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// UserRepository adds user-specific queries on top of the generic CRUD
// contract. The specialized queries go straight to the accessor/proxy with a
// domain filter rather than through FindByID.
type UserRepository struct {
	*Repository
	coll Collection
}

func NewUserRepository(coll Collection) *UserRepository {
	return &UserRepository{Repository: NewRepository(coll), coll: coll}
}

// FindByEmail returns the user with the given email, or (nil, nil) when no
// such user exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc, err := r.coll.FindOne(ctx, bson.M{"email": email})
	if err != nil || doc == nil {
		return nil, err
	}

	var u domain.User
	if err := decodeDoc(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateRole sets the user's role. Role values are validated at the service
// boundary, not here.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
