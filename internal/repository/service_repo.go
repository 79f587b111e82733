package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinicbook/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return storageErr("create service", r.db.WithContext(ctx).Create(s).Error)
}

// GetForVenue returns a live service only when it belongs to venueID.
func (r *ServiceRepository) GetForVenue(ctx context.Context, venueID, id string) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND venue_id = ?", id, venueID).
		First(&s).Error
	if err != nil {
		return nil, storageErr("get service", err)
	}
	return &s, nil
}

func (r *ServiceRepository) ListByVenue(ctx context.Context, venueID string) ([]domain.Service, error) {
	var out []domain.Service
	if err := r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("name").Find(&out).Error; err != nil {
		return nil, storageErr("list services", err)
	}
	return out, nil
}

// FindForVenue resolves ids against the live services of venueID.
// Unknown ids and services of other venues are silently absent from the result.
func (r *ServiceRepository) FindForVenue(ctx context.Context, venueID string, ids []string) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id IN ?", venueID, ids).
		Find(&out).Error
	if err != nil {
		return nil, storageErr("find services", err)
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Service{ID: s.ID}).
		Where("venue_id = ?", s.VenueID).
		Select("Name", "Description", "Price", "ImageURL", "MaxClients").
		Updates(s)
	if tx.Error != nil {
		return nil, storageErr("update service", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, storageErr("update service", gorm.ErrRecordNotFound)
	}
	return r.GetForVenue(ctx, s.VenueID, s.ID)
}

// DeleteUnlessBooked soft-deletes a service when no booking at or after now
// references it. The check and the delete share one transaction.
func (r *ServiceRepository) DeleteUnlessBooked(ctx context.Context, venueID, id string, now time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Bookings lock the venue row before inserting, so holding it here
		// keeps a booking from landing between the check and the delete.
		var venue domain.Venue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&venue, "id = ?", venueID).Error
		if err != nil {
			return err
		}

		var s domain.Service
		if err := tx.Where("id = ? AND venue_id = ?", id, venueID).First(&s).Error; err != nil {
			return err
		}

		var future int64
		err = tx.Model(&domain.BookingLine{}).
			Joins("JOIN bookings ON bookings.id = booking_lines.booking_id").
			Where("booking_lines.service_id = ? AND bookings.date_time >= ?", id, now.UTC()).
			Count(&future).Error
		if err != nil {
			return err
		}
		if future > 0 {
			return domain.ErrServiceHasFutureBookings
		}

		return tx.Delete(&s).Error
	})
	if errors.Is(err, domain.ErrServiceHasFutureBookings) {
		return err
	}
	return storageErr("delete service", err)
}
