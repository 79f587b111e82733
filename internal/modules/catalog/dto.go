package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"clinicbook/internal/domain"
)

// ---------- VENUE ----------

type CreateVenueRequest struct {
	Name              string   `json:"name" validate:"required,max=120"`
	Address           string   `json:"address" validate:"required,max=255"`
	Description       string   `json:"description" validate:"max=2000"`
	Phones            []string `json:"phones" validate:"omitempty,max=5,dive,required,max=40"`
	ImageURL          string   `json:"imageUrl" validate:"omitempty,url"`
	MaxClientsPerSlot *int     `json:"maxClientsPerSlot" validate:"omitempty,gte=1"`
	BarbersCount      *int     `json:"barbersCount" validate:"omitempty,gte=1"`
}

type UpdateVenueRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Address     string   `json:"address" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	Phones      []string `json:"phones" validate:"omitempty,max=5,dive,required,max=40"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateSettingsRequest struct {
	MaxClientsPerSlot int `json:"maxClientsPerSlot" validate:"required,gte=1,lte=100"`
	BarbersCount      int `json:"barbersCount" validate:"required,gte=1,lte=100"`
}

// ---------- SERVICE ----------

type ServiceRequest struct {
	Name        string           `json:"name" validate:"required,max=120"`
	Description string           `json:"description" validate:"max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string           `json:"imageUrl" validate:"omitempty,url"`
	MaxClients  *int             `json:"maxClients" validate:"omitempty,gte=1"`
}

// ---------- ADMIN LINK ----------

type GrantAdminRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	Role   string `json:"role" validate:"omitempty,max=20"`
}

// ---------- RESPONSES ----------

type ServiceResponse struct {
	ID          string `json:"id"`
	VenueID     string `json:"venueId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	MaxClients  *int   `json:"maxClients,omitempty"`
}

type VenueResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Address           string            `json:"address"`
	Description       string            `json:"description"`
	Phones            []string          `json:"phones"`
	ImageURL          string            `json:"imageUrl"`
	MaxClientsPerSlot int               `json:"maxClientsPerSlot"`
	BarbersCount      int               `json:"barbersCount"`
	Services          []ServiceResponse `json:"services,omitempty"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func NewServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		VenueID:     s.VenueID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(2),
		ImageURL:    s.ImageURL,
		MaxClients:  s.MaxClients,
	}
}

func NewVenueResponse(v *domain.Venue) VenueResponse {
	out := VenueResponse{
		ID:                v.ID,
		Name:              v.Name,
		Address:           v.Address,
		Description:       v.Description,
		Phones:            v.Phones,
		ImageURL:          v.ImageURL,
		MaxClientsPerSlot: v.MaxClientsPerSlot,
		BarbersCount:      v.BarbersCount,
		UpdatedAt:         v.UpdatedAt,
	}
	if out.Phones == nil {
		out.Phones = []string{}
	}
	for i := range v.Services {
		out.Services = append(out.Services, NewServiceResponse(&v.Services[i]))
	}
	return out
}

func NewVenueResponses(vs []domain.Venue) []VenueResponse {
	out := make([]VenueResponse, 0, len(vs))
	for i := range vs {
		out = append(out, NewVenueResponse(&vs[i]))
	}
	return out
}
