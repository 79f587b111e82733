package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceLimit is the first amount a decimal(10,2) money column cannot hold.
var PriceLimit = decimal.New(1, 8)

// Service is a bookable item on a venue's menu.
// MaxClients is informational; capacity is enforced per venue.
type Service struct {
	ID          string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	VenueID     string          `json:"venueId" gorm:"type:varchar(36);not null;index"`
	Name        string          `json:"name" gorm:"not null" validate:"required,max=120"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"imageUrl"`
	MaxClients  *int            `json:"maxClients,omitempty" validate:"omitempty,gte=1"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}
