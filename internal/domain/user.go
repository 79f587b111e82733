package domain

import "time"

type UserRole string

const (
	RoleClient     UserRole = "CLIENT"
	RoleVenueAdmin UserRole = "VENUE_ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleVenueAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the local record of an identity issued by the external provider.
// Only the role is owned here.
type User struct {
	ID        string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:CLIENT"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const VenueAdminRoleDefault = "ADMIN"

type VenueAdmin struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(64);not null;uniqueIndex:idx_venue_admin_link"`
	VenueID   string    `json:"venueId" gorm:"type:varchar(36);not null;uniqueIndex:idx_venue_admin_link"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Actor is the authenticated identity a request acts on behalf of.
type Actor struct {
	UserID string
}

func (a *Actor) Authenticated() bool {
	return a != nil && a.UserID != ""
}
