package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"clinicbook/internal/domain"
	"clinicbook/internal/pkg/validator"
)

type VenueRepository interface {
	Create(ctx context.Context, v *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	GetWithServices(ctx context.Context, id string) (*domain.Venue, error)
	List(ctx context.Context, search string) ([]domain.Venue, error)
	ListByAdmin(ctx context.Context, userID string) ([]domain.Venue, error)
	UpdateDetails(ctx context.Context, v *domain.Venue) (*domain.Venue, error)
	UpdateSettings(ctx context.Context, id string, maxClientsPerSlot, barbersCount int) (*domain.Venue, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetForVenue(ctx context.Context, venueID, id string) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) (*domain.Service, error)
	DeleteUnlessBooked(ctx context.Context, venueID, id string, now time.Time) error
}

type AdminRepository interface {
	GrantVenueAdmin(ctx context.Context, link *domain.VenueAdmin) error
}

type Service struct {
	venues   VenueRepository
	services ServiceRepository
	admins   AdminRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(venues VenueRepository, services ServiceRepository, admins AdminRepository, log zerolog.Logger) *Service {
	return &Service{
		venues:   venues,
		services: services,
		admins:   admins,
		log:      log.With().Str("module", "catalog").Logger(),
		now:      time.Now,
	}
}

/* ---------- VENUE ---------- */

func (s *Service) ListVenues(ctx context.Context, search string) ([]domain.Venue, error) {
	return s.venues.List(ctx, search)
}

func (s *Service) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venues.GetWithServices(ctx, id)
}

func (s *Service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*domain.Venue, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	v := &domain.Venue{
		Name:              strings.TrimSpace(req.Name),
		Address:           strings.TrimSpace(req.Address),
		Description:       req.Description,
		Phones:            req.Phones,
		ImageURL:          req.ImageURL,
		MaxClientsPerSlot: 1,
		BarbersCount:      1,
	}
	if req.MaxClientsPerSlot != nil {
		v.MaxClientsPerSlot = *req.MaxClientsPerSlot
	}
	if req.BarbersCount != nil {
		v.BarbersCount = *req.BarbersCount
	}

	if err := s.venues.Create(ctx, v); err != nil {
		return nil, err
	}
	s.log.Info().Str("venue_id", v.ID).Str("name", v.Name).Msg("venue created")
	return v, nil
}

func (s *Service) UpdateVenue(ctx context.Context, id string, req UpdateVenueRequest) (*domain.Venue, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	return s.venues.UpdateDetails(ctx, &domain.Venue{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Description: req.Description,
		Phones:      req.Phones,
		ImageURL:    req.ImageURL,
	})
}

// UpdateSettings changes the capacity figures the availability engine reads.
func (s *Service) UpdateSettings(ctx context.Context, id string, req UpdateSettingsRequest) (*domain.Venue, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	v, err := s.venues.UpdateSettings(ctx, id, req.MaxClientsPerSlot, req.BarbersCount)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("venue_id", id).
		Int("max_clients_per_slot", v.MaxClientsPerSlot).
		Int("barbers_count", v.BarbersCount).
		Msg("venue settings updated")
	return v, nil
}

// ListAdminVenues returns the venues the actor is linked to.
func (s *Service) ListAdminVenues(ctx context.Context, actor *domain.Actor) ([]domain.Venue, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return s.venues.ListByAdmin(ctx, actor.UserID)
}

func (s *Service) GrantVenueAdmin(ctx context.Context, venueID string, req GrantAdminRequest) (*domain.VenueAdmin, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	link := &domain.VenueAdmin{
		UserID:  strings.TrimSpace(req.UserID),
		VenueID: venueID,
		Role:    strings.ToUpper(strings.TrimSpace(req.Role)),
	}
	if err := s.admins.GrantVenueAdmin(ctx, link); err != nil {
		return nil, err
	}
	s.log.Info().Str("venue_id", venueID).Str("user_id", link.UserID).Msg("venue admin granted")
	return link, nil
}

/* ---------- SERVICE ---------- */

func (s *Service) CreateService(ctx context.Context, venueID string, req ServiceRequest) (*domain.Service, error) {
	if err := checkService(req); err != nil {
		return nil, err
	}
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		VenueID:     venueID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Round(2),
		ImageURL:    req.ImageURL,
		MaxClients:  req.MaxClients,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService never touches existing bookings: their lines keep the
// price they were booked at.
func (s *Service) UpdateService(ctx context.Context, venueID, serviceID string, req ServiceRequest) (*domain.Service, error) {
	if err := checkService(req); err != nil {
		return nil, err
	}
	return s.services.Update(ctx, &domain.Service{
		ID:          serviceID,
		VenueID:     venueID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Round(2),
		ImageURL:    req.ImageURL,
		MaxClients:  req.MaxClients,
	})
}

// DeleteService fails with ErrServiceHasFutureBookings while any booking at
// or after now references the service.
func (s *Service) DeleteService(ctx context.Context, venueID, serviceID string) error {
	if err := s.services.DeleteUnlessBooked(ctx, venueID, serviceID, s.now()); err != nil {
		return err
	}
	s.log.Info().Str("venue_id", venueID).Str("service_id", serviceID).Msg("service deleted")
	return nil
}

func checkService(req ServiceRequest) error {
	if err := validator.Check(req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return &domain.ValidationError{Fields: map[string]string{"Price": "gte"}}
	}
	if req.Price.GreaterThanOrEqual(domain.PriceLimit) {
		return &domain.ValidationError{Fields: map[string]string{"Price": "lt"}}
	}
	return nil
}
