package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinicbook/internal/domain"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Phones == nil {
		v.Phones = []string{}
	}
	return storageErr("create venue", r.db.WithContext(ctx).Omit("Services").Create(v).Error)
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, storageErr("get venue", err)
	}
	return &v, nil
}

// GetWithServices loads a venue with its live services ordered by name.
func (r *VenueRepository) GetWithServices(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, storageErr("get venue", err)
	}
	return &v, nil
}

func (r *VenueRepository) List(ctx context.Context, search string) ([]domain.Venue, error) {
	q := r.db.WithContext(ctx).Model(&domain.Venue{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var out []domain.Venue
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, storageErr("list venues", err)
	}
	return out, nil
}

// ListByAdmin returns the venues linked to userID, with their services.
func (r *VenueRepository) ListByAdmin(ctx context.Context, userID string) ([]domain.Venue, error) {
	var out []domain.Venue
	err := r.db.WithContext(ctx).
		Joins("JOIN venue_admins ON venue_admins.venue_id = venues.id").
		Where("venue_admins.user_id = ?", userID).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Order("venues.name").
		Find(&out).Error
	if err != nil {
		return nil, storageErr("list admin venues", err)
	}
	return out, nil
}

// UpdateDetails overwrites the descriptive fields of a venue.
func (r *VenueRepository) UpdateDetails(ctx context.Context, v *domain.Venue) (*domain.Venue, error) {
	if v.Phones == nil {
		v.Phones = []string{}
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Venue{ID: v.ID}).
		Select("Name", "Address", "Description", "Phones", "ImageURL").
		Updates(v)
	if tx.Error != nil {
		return nil, storageErr("update venue", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, storageErr("update venue", gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, v.ID)
}

func (r *VenueRepository) UpdateSettings(ctx context.Context, id string, maxClientsPerSlot, barbersCount int) (*domain.Venue, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Venue{ID: id}).
		Updates(map[string]any{
			"max_clients_per_slot": maxClientsPerSlot,
			"barbers_count":        barbersCount,
		})
	if tx.Error != nil {
		return nil, storageErr("update venue settings", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, storageErr("update venue settings", gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, id)
}
