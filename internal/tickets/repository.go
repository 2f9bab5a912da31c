package tickets

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Ticket, error)
	GetByIDWithEvent(ctx context.Context, id string) (*TicketWithEvent, error)
	ListAllWithEvent(ctx context.Context) ([]TicketWithEvent, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByIDWithEvent(ctx context.Context, id string) (*TicketWithEvent, error) {
	var row TicketWithEvent
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Select("tickets.*, e.name AS event_name, e.date AS event_date").
		Joins("LEFT JOIN events e ON e.id = tickets.event_id").
		Where("tickets.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListAllWithEvent(ctx context.Context) ([]TicketWithEvent, error) {
	var rows []TicketWithEvent
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Select("tickets.*, e.name AS event_name, e.date AS event_date").
		Joins("LEFT JOIN events e ON e.id = tickets.event_id").
		Order("tickets.booking_time DESC").
		Scan(&rows).Error
	return rows, err
}

// UpdateStatus transitions a ticket from one status to another. The WHERE on
// the current status makes the check-and-set atomic; false means the ticket
// was not in the expected state.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
