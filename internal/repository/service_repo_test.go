package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/internal/domain"
)

func TestServiceRepository_FindForVenue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, db, 1)
	other := seedVenue(t, db, 1)
	a := seedService(t, db, venue.ID, "Consulta de Avaliação", "120.00")
	b := seedService(t, db, venue.ID, "Implante Dentário", "1200.00")
	foreign := seedService(t, db, other.ID, "Prótese Dentária", "850.00")
	repo := NewServiceRepository(db)

	got, err := repo.FindForVenue(ctx, venue.ID, []string{a.ID, b.ID, foreign.ID, "nope"})
	require.NoError(t, err)
	ids := []string{}
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	empty, err := repo.FindForVenue(ctx, venue.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestServiceRepository_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, db, 1)
	s := seedService(t, db, venue.ID, "Consulta", "120.00")
	repo := NewServiceRepository(db)

	cap := 2
	updated, err := repo.Update(ctx, &domain.Service{
		ID:          s.ID,
		VenueID:     venue.ID,
		Name:        "Consulta de Avaliação",
		Description: "Avaliação completa",
		Price:       decimal.RequireFromString("200.00"),
		MaxClients:  &cap,
	})
	require.NoError(t, err)
	assert.Equal(t, "Consulta de Avaliação", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(200)))
	require.NotNil(t, updated.MaxClients)
	assert.Equal(t, 2, *updated.MaxClients)

	_, err = repo.Update(ctx, &domain.Service{ID: s.ID, VenueID: "other-venue", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceRepository_DeleteUnlessBooked(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, db, 3)
	booked := seedService(t, db, venue.ID, "Clareamento Dental", "450.00")
	pastOnly := seedService(t, db, venue.ID, "Extração Dentária", "200.00")
	free := seedService(t, db, venue.ID, "Ortodontia (Aparelho)", "320.00")
	services := NewServiceRepository(db)
	bookings := NewBookingRepository(db)

	now := time.Date(2030, 3, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.CreateWithinCapacity(ctx, newBooking(venue.ID, "u1", now.Add(24*time.Hour), booked)))
	require.NoError(t, bookings.CreateWithinCapacity(ctx, newBooking(venue.ID, "u1", now.Add(-24*time.Hour), pastOnly)))

	err := services.DeleteUnlessBooked(ctx, venue.ID, booked.ID, now)
	assert.ErrorIs(t, err, domain.ErrServiceHasFutureBookings)
	_, err = services.GetForVenue(ctx, venue.ID, booked.ID)
	assert.NoError(t, err, "service with future bookings must survive")

	require.NoError(t, services.DeleteUnlessBooked(ctx, venue.ID, pastOnly.ID, now))
	require.NoError(t, services.DeleteUnlessBooked(ctx, venue.ID, free.ID, now))

	_, err = services.GetForVenue(ctx, venue.ID, free.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := services.ListByVenue(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, booked.ID, listed[0].ID)

	// History keeps its lines after the service is gone.
	past, err := bookings.ListByUser(ctx, "u1", domain.ScopePast, now)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, pastOnly.ID, past[0].Lines[0].ServiceID)

	err = services.DeleteUnlessBooked(ctx, venue.ID, "missing", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
