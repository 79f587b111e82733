package booking

import (
	"context"
	"time"

	"clinicbook/internal/domain"
)

type BookingRepository interface {
	ListForDay(ctx context.Context, venueID string, from, to time.Time) ([]time.Time, error)
	CreateWithinCapacity(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string, scope domain.BookingScope, now time.Time) ([]domain.Booking, error)
	ListUpcomingByVenue(ctx context.Context, venueID string, now time.Time) ([]domain.Booking, error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
}

type ServiceRepository interface {
	FindForVenue(ctx context.Context, venueID string, ids []string) ([]domain.Service, error)
}

// SlotCache holds per-day booking snapshots for the availability read path.
// Set must be given the Version read before the store was queried;
// Invalidate bumps it so older snapshots are never served.
type SlotCache interface {
	Version(ctx context.Context, venueID string, day time.Time) (int64, error)
	Get(ctx context.Context, venueID string, day time.Time) ([]time.Time, bool, error)
	Set(ctx context.Context, venueID string, day time.Time, version int64, booked []time.Time) error
	Invalidate(ctx context.Context, venueID string, day time.Time) error
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, b *domain.Booking) error
}
