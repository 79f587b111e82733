package domain

import "time"

type Venue struct {
	ID                string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name              string    `json:"name" gorm:"not null" validate:"required,max=120"`
	Address           string    `json:"address" gorm:"not null" validate:"required,max=255"`
	Description       string    `json:"description" gorm:"type:text"`
	Phones            []string  `json:"phones" gorm:"serializer:json"`
	ImageURL          string    `json:"imageUrl"`
	MaxClientsPerSlot int       `json:"maxClientsPerSlot" gorm:"not null;default:1" validate:"gte=1"`
	BarbersCount      int       `json:"barbersCount" gorm:"not null;default:1" validate:"gte=1"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Services []Service `json:"services,omitempty" gorm:"foreignKey:VenueID"`
}
