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

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ListForDay returns the instants of the venue's bookings within [from, to).
func (r *BookingRepository) ListForDay(ctx context.Context, venueID string, from, to time.Time) ([]time.Time, error) {
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Select("id", "date_time").
		Where("venue_id = ? AND date_time >= ? AND date_time < ?", venueID, from.UTC(), to.UTC()).
		Order("date_time").
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("list day bookings", err)
	}

	out := make([]time.Time, 0, len(rows))
	for _, b := range rows {
		out = append(out, b.DateTime)
	}
	return out, nil
}

// CreateWithinCapacity inserts the booking and its lines in one transaction.
// The venue row is locked and the slot re-counted first, so concurrent
// inserts for the same slot never exceed the venue's capacity.
func (r *BookingRepository) CreateWithinCapacity(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.DateTime = b.DateTime.UTC()
	for i := range b.Lines {
		if b.Lines[i].ID == "" {
			b.Lines[i].ID = uuid.NewString()
		}
		b.Lines[i].BookingID = b.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue domain.Venue
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "max_clients_per_slot").
			First(&venue, "id = ?", b.VenueID).Error
		if err != nil {
			return err
		}

		// Services may have been deleted since the caller resolved them;
		// DeleteUnlessBooked takes the same venue lock.
		ids := lineServiceIDs(b.Lines)
		var live int64
		err = tx.Model(&domain.Service{}).
			Where("venue_id = ? AND id IN ?", b.VenueID, ids).
			Count(&live).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 || live != int64(len(ids)) {
			return domain.ErrInvalidServiceSelection
		}

		var taken int64
		err = tx.Model(&domain.Booking{}).
			Where("venue_id = ? AND date_time = ?", b.VenueID, b.DateTime).
			Count(&taken).Error
		if err != nil {
			return err
		}
		if taken >= int64(venue.MaxClientsPerSlot) {
			return domain.ErrSlotUnavailable
		}

		return tx.Omit("Venue").Create(b).Error
	})
	if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrInvalidServiceSelection) {
		return err
	}
	return storageErr("create booking", err)
}

func lineServiceIDs(lines []domain.BookingLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ServiceID]; ok {
			continue
		}
		seen[l.ServiceID] = struct{}{}
		ids = append(ids, l.ServiceID)
	}
	return ids
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.withDetails(r.db.WithContext(ctx)).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, storageErr("get booking", err)
	}
	return &b, nil
}

// ListByUser returns the user's upcoming (date >= now) or past bookings,
// oldest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string, scope domain.BookingScope, now time.Time) ([]domain.Booking, error) {
	q := r.withDetails(r.db.WithContext(ctx)).Where("user_id = ?", userID)
	if scope == domain.ScopePast {
		q = q.Where("date_time < ?", now.UTC())
	} else {
		q = q.Where("date_time >= ?", now.UTC())
	}

	var out []domain.Booking
	if err := q.Order("date_time").Find(&out).Error; err != nil {
		return nil, storageErr("list user bookings", err)
	}
	return out, nil
}

func (r *BookingRepository) ListUpcomingByVenue(ctx context.Context, venueID string, now time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("venue_id = ? AND date_time >= ?", venueID, now.UTC()).
		Order("date_time").
		Find(&out).Error
	if err != nil {
		return nil, storageErr("list venue bookings", err)
	}
	return out, nil
}

func (r *BookingRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Venue").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}
