package domain

// Booking lifecycle events published on the in-process event bus.
const (
	EventBookingCreated       = "booking:created"
	EventBookingStatusChanged = "booking:statusChanged"
	EventBookingDeleted       = "booking:deleted"
)

// BookingCreated is the payload for EventBookingCreated.
type BookingCreated struct {
	ID      string
	Booking Booking
}

// BookingStatusChanged is the payload for EventBookingStatusChanged.
type BookingStatusChanged struct {
	ID     string
	Status BookingStatus
}

// BookingDeleted is the payload for EventBookingDeleted. Booking is nil when
// the record had already vanished before the delete was issued.
type BookingDeleted struct {
	ID      string
	Booking *Booking
}
