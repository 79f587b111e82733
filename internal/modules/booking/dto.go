package booking

import (
	"time"

	"clinicbook/internal/domain"
)

type CreateBookingRequest struct {
	VenueID    string    `json:"venueId" binding:"required"`
	ServiceIDs []string  `json:"serviceIds"`
	DateTime   time.Time `json:"dateTime" binding:"required"`
}

type AvailabilityResponse struct {
	VenueID string   `json:"venueId"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
}

type BookingLineResponse struct {
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Position    int    `json:"position"`
	Price       string `json:"price"`
}

type BookingResponse struct {
	ID         string                `json:"id"`
	UserID     string                `json:"userId"`
	VenueID    string                `json:"venueId"`
	VenueName  string                `json:"venueName,omitempty"`
	DateTime   time.Time             `json:"dateTime"`
	TotalPrice string                `json:"totalPrice"`
	Lines      []BookingLineResponse `json:"lines"`
	CreatedAt  time.Time             `json:"createdAt"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	out := BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		VenueID:    b.VenueID,
		DateTime:   b.DateTime.UTC(),
		TotalPrice: b.TotalPrice.StringFixed(2),
		Lines:      make([]BookingLineResponse, 0, len(b.Lines)),
		CreatedAt:  b.CreatedAt,
	}
	if b.Venue != nil {
		out.VenueName = b.Venue.Name
	}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, BookingLineResponse{
			ServiceID:   l.ServiceID,
			ServiceName: l.ServiceName,
			Position:    l.Position,
			Price:       l.Price.StringFixed(2),
		})
	}
	return out
}

func NewBookingResponses(bs []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for i := range bs {
		out = append(out, NewBookingResponse(&bs[i]))
	}
	return out
}
