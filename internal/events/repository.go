package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]Event, error)
	ListAllWithSales(ctx context.Context) ([]EventSales, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) ListUpcoming(ctx context.Context, now time.Time) ([]Event, error) {
	var result []Event
	err := r.db.WithContext(ctx).
		Where("date > ?", now).
		Order("date ASC").
		Find(&result).Error
	return result, err
}

// ListAllWithSales returns every event with ticket sales aggregates for the
// admin dashboard. Cancelled tickets still count as sold; refunds are not
// modelled.
func (r *repository) ListAllWithSales(ctx context.Context) ([]EventSales, error) {
	var result []EventSales
	err := r.db.WithContext(ctx).
		Model(&Event{}).
		Select(`events.*,
			(SELECT COUNT(*) FROM tickets t WHERE t.event_id = events.id) AS tickets_sold,
			(SELECT COALESCE(SUM(t.total_amount), 0) FROM tickets t WHERE t.event_id = events.id) AS total_revenue`).
		Order("date DESC").
		Scan(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&Event{}).
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

// Delete removes the event and its seat rows in one transaction, so a failed
// seat cleanup never leaves seats pointing at a deleted event.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM seats WHERE event_id = ?`, id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
