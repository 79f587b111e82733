package access

import (
	"context"
	"errors"

	"clinicbook/internal/domain"
)

// RoleStore is the identity data the gate reads through.
type RoleStore interface {
	GetRole(ctx context.Context, userID string) (domain.UserRole, error)
	HasVenueLink(ctx context.Context, userID, venueID string) (bool, error)
}

// Gate answers every authorization question asked by admin entry points.
// It never mutates identity data.
type Gate struct {
	store RoleStore
}

func NewGate(store RoleStore) *Gate {
	return &Gate{store: store}
}

// RoleOf falls back to CLIENT when no role record exists.
func (g *Gate) RoleOf(ctx context.Context, userID string) (domain.UserRole, error) {
	if userID == "" {
		return domain.RoleClient, nil
	}
	role, err := g.store.GetRole(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RoleClient, nil
	}
	if err != nil {
		return "", err
	}
	if !role.Valid() {
		return domain.RoleClient, nil
	}
	return role, nil
}

func (g *Gate) CanAccessAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := g.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == domain.RoleVenueAdmin || role == domain.RoleSuperAdmin, nil
}

// IsAdminOfVenue requires an explicit link; SUPER_ADMIN gets no implicit access.
func (g *Gate) IsAdminOfVenue(ctx context.Context, userID, venueID string) (bool, error) {
	if userID == "" || venueID == "" {
		return false, nil
	}
	return g.store.HasVenueLink(ctx, userID, venueID)
}

func (g *Gate) HasRole(ctx context.Context, userID string, role domain.UserRole) (bool, error) {
	got, err := g.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return got == role, nil
}
