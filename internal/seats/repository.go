package seats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetByLabels(ctx context.Context, eventID uuid.UUID, labels []string) ([]Seat, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearByEvent(ctx context.Context, eventID uuid.UUID) error
	ReplaceForEvent(ctx context.Context, eventID uuid.UUID, newSeats []Seat) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	var result []Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("row_label, seat_number").
		Find(&result).Error
	return result, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetByLabels(ctx context.Context, eventID uuid.UUID, labels []string) ([]Seat, error) {
	var result []Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND seat_label IN ?", eventID, labels).
		Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Seat{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ClearByEvent(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Seat{}).Error
}

// ReplaceForEvent deletes the event's existing seats and inserts the new map
// as a single batched transaction, so a failed generation never leaves the
// event half-seated.
func (r *repository) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, newSeats []Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&Seat{}).Error; err != nil {
			return err
		}
		if len(newSeats) == 0 {
			return nil
		}
		return tx.Create(&newSeats).Error
	})
}
