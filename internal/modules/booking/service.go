package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"clinicbook/internal/domain"
	"clinicbook/internal/metrics"
	"clinicbook/internal/modules/availability"
)

type Service struct {
	bookings BookingRepository
	venues   VenueRepository
	services ServiceRepository
	engine   *availability.Engine
	cache    SlotCache
	events   EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	venues VenueRepository,
	services ServiceRepository,
	engine *availability.Engine,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		venues:   venues,
		services: services,
		engine:   engine,
		log:      log.With().Str("module", "booking").Logger(),
		now:      time.Now,
	}
}

// WithCache enables the availability snapshot cache.
func (s *Service) WithCache(c SlotCache) *Service {
	s.cache = c
	return s
}

// WithEvents enables booking.created events.
func (s *Service) WithEvents(p EventPublisher) *Service {
	s.events = p
	return s
}

// CreateBooking validates, prices and stores a booking for actor.
// Availability is re-derived from the store, never from the cache, and the
// store re-counts the slot inside the insert transaction.
func (s *Service) CreateBooking(ctx context.Context, actor *domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	b, err := s.createBooking(ctx, actor, req)
	if err != nil {
		metrics.BookingsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}
	metrics.BookingsCreatedTotal.WithLabelValues(b.VenueID).Inc()

	s.afterCreate(ctx, b)
	return b, nil
}

func (s *Service) createBooking(ctx context.Context, actor *domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	ids := normalizeIDs(req.ServiceIDs)
	if len(ids) == 0 {
		return nil, domain.ErrInvalidServiceSelection
	}
	found, err := s.services.FindForVenue(ctx, req.VenueID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}
	if len(byID) != len(ids) {
		return nil, domain.ErrInvalidServiceSelection
	}

	venue, err := s.venues.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from, to := s.engine.DayBounds(req.DateTime)
	booked, err := s.bookings.ListForDay(ctx, venue.ID, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.engine.CheckSlot(venue, req.DateTime, booked, now); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:     actor.UserID,
		VenueID:    venue.ID,
		DateTime:   req.DateTime.UTC(),
		TotalPrice: decimal.Zero,
		Lines:      make([]domain.BookingLine, 0, len(ids)),
	}
	for i, id := range ids {
		svc := byID[id]
		b.Lines = append(b.Lines, domain.BookingLine{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Position:    i,
			Price:       svc.Price,
		})
		b.TotalPrice = b.TotalPrice.Add(svc.Price)
	}
	if b.TotalPrice.GreaterThanOrEqual(domain.PriceLimit) {
		return nil, &domain.ValidationError{Fields: map[string]string{"serviceIds": "total price too large"}}
	}

	if err := s.bookings.CreateWithinCapacity(ctx, b); err != nil {
		return nil, err
	}
	b.Venue = venue
	return b, nil
}

// afterCreate runs the best-effort side effects of a committed booking.
func (s *Service) afterCreate(ctx context.Context, b *domain.Booking) {
	log := s.log.With().Str("booking_id", b.ID).Str("venue_id", b.VenueID).Logger()

	if s.cache != nil {
		day, _ := s.engine.DayBounds(b.DateTime)
		if err := s.cache.Invalidate(ctx, b.VenueID, day); err != nil {
			log.Warn().Err(err).Msg("availability cache invalidation failed")
		}
	}

	if s.events != nil {
		if err := s.events.PublishBookingCreated(ctx, b); err != nil {
			metrics.EventsPublishErrorsTotal.WithLabelValues("booking.created").Inc()
			log.Warn().Err(err).Msg("publish booking.created failed")
		}
	}

	log.Info().
		Str("user_id", b.UserID).
		Time("date_time", b.DateTime).
		Str("total", b.TotalPrice.StringFixed(2)).
		Int("services", len(b.Lines)).
		Msg("booking created")
}

// GetAvailability lists the open slots of venueID on date ("YYYY-MM-DD").
func (s *Service) GetAvailability(ctx context.Context, venueID, date string) (*AvailabilityResponse, error) {
	day, err := s.engine.ParseDay(date)
	if err != nil {
		return nil, err
	}
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	booked, err := s.dayBookings(ctx, venue.ID, day)
	if err != nil {
		return nil, err
	}

	slots := s.engine.ComputeAvailableSlots(venue, day, booked, s.now())
	return &AvailabilityResponse{
		VenueID: venue.ID,
		Date:    day.Format(availability.DateLayout),
		Slots:   availability.Strings(slots),
	}, nil
}

// dayBookings serves the day snapshot from the cache when possible.
// Cache failures fall through to the store.
func (s *Service) dayBookings(ctx context.Context, venueID string, day time.Time) ([]time.Time, error) {
	if s.cache != nil {
		booked, ok, err := s.cache.Get(ctx, venueID, day)
		switch {
		case err != nil:
			metrics.AvailabilityCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("venue_id", venueID).Msg("availability cache read failed")
		case ok:
			metrics.AvailabilityCacheTotal.WithLabelValues("hit").Inc()
			return booked, nil
		default:
			metrics.AvailabilityCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	// The version is read before the store so a booking committed in
	// between outdates the snapshot written below.
	var version int64
	fill := s.cache != nil
	if fill {
		v, err := s.cache.Version(ctx, venueID, day)
		if err != nil {
			fill = false
			s.log.Warn().Err(err).Str("venue_id", venueID).Msg("availability cache version read failed")
		}
		version = v
	}

	from, to := s.engine.DayBounds(day)
	booked, err := s.bookings.ListForDay(ctx, venueID, from, to)
	if err != nil {
		return nil, err
	}

	if fill {
		if err := s.cache.Set(ctx, venueID, day, version, booked); err != nil {
			s.log.Warn().Err(err).Str("venue_id", venueID).Msg("availability cache write failed")
		}
	}
	return booked, nil
}

func (s *Service) ListMyBookings(ctx context.Context, actor *domain.Actor, scope string) ([]domain.Booking, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	sc, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(ctx, actor.UserID, sc, s.now())
}

// GetBooking returns one of the actor's bookings. Bookings of other users
// are reported as not found.
func (s *Service) GetBooking(ctx context.Context, actor *domain.Actor, id string) (*domain.Booking, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.UserID {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

// ListVenueAppointments returns the venue's bookings from now on.
func (s *Service) ListVenueAppointments(ctx context.Context, venueID string) ([]domain.Booking, error) {
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}
	return s.bookings.ListUpcomingByVenue(ctx, venueID, s.now())
}

func parseScope(raw string) (domain.BookingScope, error) {
	switch domain.BookingScope(strings.ToLower(strings.TrimSpace(raw))) {
	case "", domain.ScopeUpcoming:
		return domain.ScopeUpcoming, nil
	case domain.ScopePast:
		return domain.ScopePast, nil
	}
	return "", &domain.ValidationError{Fields: map[string]string{"scope": "must be upcoming or past"}}
}

// normalizeIDs trims and de-duplicates, keeping first-seen order. Blank ids
// are kept so they fail resolution like any other unknown id.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrInvalidServiceSelection):
		return "invalid_selection"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	default:
		return "storage"
	}
}
