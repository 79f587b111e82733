package notification

import (
	"time"

	"clinicbook/internal/domain"
)

// Routing keys of domain events.
const (
	TypeBookingCreated = "booking.created"
)

type BookingCreated struct {
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	VenueID    string    `json:"venueId"`
	DateTime   time.Time `json:"dateTime"`
	TotalPrice string    `json:"totalPrice"`
	ServiceIDs []string  `json:"serviceIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewBookingCreated(b *domain.Booking) BookingCreated {
	return BookingCreated{
		BookingID:  b.ID,
		UserID:     b.UserID,
		VenueID:    b.VenueID,
		DateTime:   b.DateTime.UTC(),
		TotalPrice: b.TotalPrice.StringFixed(2),
		ServiceIDs: b.ServiceIDs(),
		CreatedAt:  b.CreatedAt.UTC(),
	}
}
