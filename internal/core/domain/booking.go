package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending  BookingStatus = "Pending"
	StatusAccepted BookingStatus = "Accepted"
	StatusRejected BookingStatus = "Rejected"
)

// ValidStatus reports whether s is one of the enumerated booking statuses.
func ValidStatus(s BookingStatus) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// Booking ties a user (by email) to a tour package. Bookings start Pending
// and move to Accepted or Rejected via the status-update operation only;
// deletion is terminal.
type Booking struct {
	ID         string        `json:"id" bson:"_id,omitempty"`
	Reference  string        `json:"reference" bson:"reference"`
	Email      string        `json:"email" bson:"email"`
	PackageRef string        `json:"package_ref" bson:"package_ref"`
	GuestCount int           `json:"guest_count,omitempty" bson:"guest_count,omitempty"`
	TourDate   time.Time     `json:"tour_date,omitempty" bson:"tour_date,omitempty"`
	Status     BookingStatus `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}
