package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/tour-booking-api/internal/core/domain"
)

// BookingRepository adds booking-specific queries on top of the generic CRUD
// contract.
type BookingRepository struct {
	*Repository
	coll Collection
}

func NewBookingRepository(coll Collection) *BookingRepository {
	return &BookingRepository{Repository: NewRepository(coll), coll: coll}
}

// GetByID returns the booking with the given id as a typed record, or
// (nil, nil) when absent.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	doc, err := r.FindByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}

	var b domain.Booking
	if err := decodeDoc(doc, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByEmail returns every booking made under the given email.
func (r *BookingRepository) FindByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	docs, err := r.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(docs))
	for _, doc := range docs {
		var b domain.Booking
		if err := decodeDoc(doc, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// UpdateStatus sets the booking's status and returns the modified count.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
