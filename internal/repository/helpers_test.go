package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinicbook/internal/database"
	"clinicbook/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedVenue(t *testing.T, db *gorm.DB, capacity int) *domain.Venue {
	t.Helper()
	v := &domain.Venue{
		Name:              "OdontoVida Clínica Odontológica",
		Address:           "Av. Paulista, 1500 - Bela Vista, São Paulo - SP",
		Phones:            []string{"(11) 99999-9999"},
		MaxClientsPerSlot: capacity,
		BarbersCount:      2,
	}
	require.NoError(t, NewVenueRepository(db).Create(context.Background(), v))
	return v
}

func seedService(t *testing.T, db *gorm.DB, venueID, name, price string) *domain.Service {
	t.Helper()
	s := &domain.Service{
		VenueID: venueID,
		Name:    name,
		Price:   decimal.RequireFromString(price),
	}
	require.NoError(t, NewServiceRepository(db).Create(context.Background(), s))
	return s
}

func newBooking(venueID, userID string, at time.Time, services ...*domain.Service) *domain.Booking {
	b := &domain.Booking{
		UserID:     userID,
		VenueID:    venueID,
		DateTime:   at,
		TotalPrice: decimal.Zero,
	}
	for i, s := range services {
		b.Lines = append(b.Lines, domain.BookingLine{
			ServiceID:   s.ID,
			ServiceName: s.Name,
			Position:    i,
			Price:       s.Price,
		})
		b.TotalPrice = b.TotalPrice.Add(s.Price)
	}
	return b
}
