package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinicbook/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetRole returns domain.ErrNotFound when the identity has no role record.
func (r *UserRepository) GetRole(ctx context.Context, userID string) (domain.UserRole, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Select("id", "role").First(&u, "id = ?", userID).Error
	if err != nil {
		return "", storageErr("get user role", err)
	}
	return u.Role, nil
}

func (r *UserRepository) HasVenueLink(ctx context.Context, userID, venueID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.VenueAdmin{}).
		Where("user_id = ? AND venue_id = ?", userID, venueID).
		Count(&cnt).Error
	if err != nil {
		return false, storageErr("check venue link", err)
	}
	return cnt > 0, nil
}

// Upsert writes the identity record, overwriting role and profile fields.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
	}).Create(u).Error
	return storageErr("upsert user", err)
}

// GrantVenueAdmin links userID to venueID and promotes a CLIENT (or missing)
// identity to VENUE_ADMIN. Other roles are left untouched.
func (r *UserRepository) GrantVenueAdmin(ctx context.Context, link *domain.VenueAdmin) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	if link.Role == "" {
		link.Role = domain.VenueAdminRoleDefault
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		err := tx.First(&u, "id = ?", link.UserID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = domain.User{ID: link.UserID, Role: domain.RoleVenueAdmin}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case u.Role == domain.RoleClient:
			if err := tx.Model(&u).Update("role", domain.RoleVenueAdmin).Error; err != nil {
				return err
			}
		}

		return tx.Create(link).Error
	})
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyVenueAdmin
	}
	return storageErr("grant venue admin", err)
}
