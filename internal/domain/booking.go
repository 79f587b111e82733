package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID         string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID     string          `json:"userId" gorm:"type:varchar(64);not null;index"`
	VenueID    string          `json:"venueId" gorm:"type:varchar(36);not null;index:idx_booking_venue_slot"`
	DateTime   time.Time       `json:"dateTime" gorm:"not null;index:idx_booking_venue_slot"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"createdAt"`

	Lines []BookingLine `json:"lines" gorm:"foreignKey:BookingID"`
	Venue *Venue        `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
}

// BookingLine keeps the price a service had when it was booked.
type BookingLine struct {
	ID          string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	BookingID   string          `json:"bookingId" gorm:"type:varchar(36);not null;index"`
	ServiceID   string          `json:"serviceId" gorm:"type:varchar(36);not null;index"`
	ServiceName string          `json:"serviceName"`
	Position    int             `json:"position" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}

type BookingScope string

const (
	ScopeUpcoming BookingScope = "upcoming"
	ScopePast     BookingScope = "past"
)

// ServiceIDs returns the booked service ids in line order.
func (b *Booking) ServiceIDs() []string {
	ids := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		ids = append(ids, l.ServiceID)
	}
	return ids
}
