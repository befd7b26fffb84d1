package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// WishlistRepository adds the user-email lookup wishlists are keyed on.
type WishlistRepository struct {
	*Repository
	coll Collection
}

func NewWishlistRepository(coll Collection) *WishlistRepository {
	return &WishlistRepository{Repository: NewRepository(coll), coll: coll}
}

// FindByUserEmail returns every wish-list entry owned by the given email.
func (r *WishlistRepository) FindByUserEmail(ctx context.Context, email string) ([]bson.M, error) {
	return r.coll.Find(ctx, bson.M{"user_email": email})
}
