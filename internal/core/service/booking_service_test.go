package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamly/tour-booking-api/internal/core/domain"
	"github.com/roamly/tour-booking-api/internal/core/ports"
	"github.com/roamly/tour-booking-api/internal/infrastructure/bus"
)

type stubBookingRepo struct {
	bookings    map[string]*domain.Booking
	deleteCalls int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) FindAll(_ context.Context, _ bson.M) ([]bson.M, error) { return nil, nil }

func (r *stubBookingRepo) FindByID(_ context.Context, _ string) (bson.M, error) { return nil, nil }

func (r *stubBookingRepo) Create(_ context.Context, doc bson.M) (string, error) {
	id := primitive.NewObjectID().Hex()
	r.bookings[id] = &domain.Booking{
		ID:         id,
		Reference:  doc["reference"].(string),
		Email:      doc["email"].(string),
		PackageRef: doc["package_ref"].(string),
		Status:     doc["status"].(domain.BookingStatus),
	}
	return id, nil
}

func (r *stubBookingRepo) Update(_ context.Context, _ string, _ bson.M) (int64, error) {
	return 0, nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, domain.ErrInvalidID
	}
	r.deleteCalls++
	if _, ok := r.bookings[id]; !ok {
		return 0, nil
	}
	delete(r.bookings, id)
	return 1, nil
}

func (r *stubBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range r.bookings {
		if b.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, domain.ErrInvalidID
	}
	b, ok := r.bookings[id]
	if !ok {
		return 0, nil
	}
	b.Status = status
	return 1, nil
}

func newBookingSvc(repo *stubBookingRepo, b *bus.Bus) *BookingService {
	return NewBookingService(repo, b, zerolog.Nop())
}

func TestBookingService_Create_PublishesOneEvent(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	var payloads []domain.BookingCreated
	eventBus.Subscribe(domain.EventBookingCreated, func(_ context.Context, p any) error {
		payloads = append(payloads, p.(domain.BookingCreated))
		return nil
	})

	id, err := svc.Create(context.Background(), ports.CreateBookingInput{Email: "a@x.com", PackageRef: "p1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected an inserted id")
	}

	if len(payloads) != 1 {
		t.Fatalf("expected exactly one booking:created event, got %d", len(payloads))
	}
	got := payloads[0]
	if got.ID != id {
		t.Fatalf("payload id %q does not match inserted id %q", got.ID, id)
	}
	if got.Booking.PackageRef != "p1" || got.Booking.Email != "a@x.com" {
		t.Fatalf("payload missing booking data: %+v", got.Booking)
	}
	if got.Booking.Status != domain.StatusPending {
		t.Fatalf("expected default status Pending, got %s", got.Booking.Status)
	}
	if !strings.HasPrefix(got.Booking.Reference, "TRB-") {
		t.Fatalf("unexpected reference: %q", got.Booking.Reference)
	}
}

func TestBookingService_Create_SubscriberOrder(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	var order []string
	eventBus.Subscribe(domain.EventBookingCreated, func(_ context.Context, _ any) error {
		order = append(order, "notifier")
		return nil
	})
	eventBus.Subscribe(domain.EventBookingCreated, func(_ context.Context, _ any) error {
		order = append(order, "audit")
		return nil
	})

	if _, err := svc.Create(context.Background(), ports.CreateBookingInput{Email: "a@x.com", PackageRef: "p1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(order) != 2 || order[0] != "notifier" || order[1] != "audit" {
		t.Fatalf("expected subscription order, got %v", order)
	}
}

func TestBookingService_Create_InvalidStatus(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	published := 0
	eventBus.Subscribe(domain.EventBookingCreated, func(_ context.Context, _ any) error {
		published++
		return nil
	})

	_, err := svc.Create(context.Background(), ports.CreateBookingInput{Email: "a@x.com", PackageRef: "p1", Status: "Confirmed"})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if published != 0 || len(repo.bookings) != 0 {
		t.Fatalf("expected no side effects on rejected status")
	}
}

func TestBookingService_Create_SubscriberFailureDoesNotFailBooking(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	eventBus.Subscribe(domain.EventBookingCreated, func(_ context.Context, _ any) error {
		return errors.New("mailer down")
	})

	id, err := svc.Create(context.Background(), ports.CreateBookingInput{Email: "a@x.com", PackageRef: "p1"})
	if err != nil {
		t.Fatalf("expected booking to succeed despite subscriber failure, got %v", err)
	}
	if _, ok := repo.bookings[id]; !ok {
		t.Fatalf("booking not persisted")
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	var changes []domain.BookingStatusChanged
	eventBus.Subscribe(domain.EventBookingStatusChanged, func(_ context.Context, p any) error {
		changes = append(changes, p.(domain.BookingStatusChanged))
		return nil
	})

	id, err := svc.Create(context.Background(), ports.CreateBookingInput{Email: "a@x.com", PackageRef: "p1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := svc.UpdateStatus(context.Background(), id, domain.StatusAccepted)
	if err != nil || n != 1 {
		t.Fatalf("UpdateStatus: n=%d err=%v", n, err)
	}
	if len(changes) != 1 || changes[0].ID != id || changes[0].Status != domain.StatusAccepted {
		t.Fatalf("unexpected statusChanged events: %v", changes)
	}

	bookings, err := svc.FindByEmail(context.Background(), "a@x.com")
	if err != nil || len(bookings) != 1 {
		t.Fatalf("FindByEmail: bookings=%v err=%v", bookings, err)
	}
	if bookings[0].Status != domain.StatusAccepted {
		t.Fatalf("expected persisted status Accepted, got %s", bookings[0].Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), id, "Done"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("rejected status must not publish, got %d events", len(changes))
	}
}

func TestBookingService_Delete_Existing(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	var deletions []domain.BookingDeleted
	eventBus.Subscribe(domain.EventBookingDeleted, func(_ context.Context, p any) error {
		deletions = append(deletions, p.(domain.BookingDeleted))
		return nil
	})

	id, err := svc.Create(context.Background(), ports.CreateBookingInput{Email: "a@x.com", PackageRef: "p1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := svc.Delete(context.Background(), id)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if len(deletions) != 1 || deletions[0].Booking == nil || deletions[0].Booking.Email != "a@x.com" {
		t.Fatalf("expected deleted event carrying the booking, got %v", deletions)
	}
}

func TestBookingService_Delete_Missing(t *testing.T) {
	repo := newStubBookingRepo()
	eventBus := bus.New(zerolog.Nop())
	svc := newBookingSvc(repo, eventBus)

	var deletions []domain.BookingDeleted
	eventBus.Subscribe(domain.EventBookingDeleted, func(_ context.Context, p any) error {
		deletions = append(deletions, p.(domain.BookingDeleted))
		return nil
	})

	id := primitive.NewObjectID().Hex()
	n, err := svc.Delete(context.Background(), id)
	if err != nil || n != 0 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if repo.deleteCalls != 1 {
		t.Fatalf("expected the store delete to be issued anyway")
	}
	if len(deletions) != 1 || deletions[0].ID != id || deletions[0].Booking != nil {
		t.Fatalf("expected deleted event with nil booking, got %v", deletions)
	}
}
