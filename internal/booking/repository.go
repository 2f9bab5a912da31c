package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"hallbook/internal/seats"
	"hallbook/internal/tickets"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateReservation(ctx context.Context, reservation *PendingReservation) error
	GetActiveReservation(ctx context.Context, paymentID string, now time.Time) (*PendingReservation, error)
	ConfirmReservation(ctx context.Context, paymentID string, now time.Time) (*tickets.Ticket, error)
	CreateTicket(ctx context.Context, ticket *tickets.Ticket) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReservation(ctx context.Context, reservation *PendingReservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetActiveReservation(ctx context.Context, paymentID string, now time.Time) (*PendingReservation, error) {
	var reservation PendingReservation
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND expires_at > ?", paymentID, now).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrExpired
		}
		return nil, err
	}
	return &reservation, nil
}

// ConfirmReservation promotes a pending reservation into a ticket. The whole
// promotion runs in one transaction: the reservation row and the seat rows are
// locked FOR UPDATE, the seats are re-checked against concurrent bookings, and
// the ticket insert, seat occupation and reservation delete commit together or
// not at all.
func (r *repository) ConfirmReservation(ctx context.Context, paymentID string, now time.Time) (*tickets.Ticket, error) {
	var ticket *tickets.Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation PendingReservation
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ? AND expires_at > ?", paymentID, now).
			First(&reservation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFoundOrExpired
			}
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		labels := reservation.SeatList()
		if err := lockAndCheckSeats(tx, reservation.EventID, labels); err != nil {
			return err
		}

		t := &tickets.Ticket{
			ID:            reservation.BookingRef,
			EventID:       reservation.EventID,
			SeatLabels:    reservation.SeatLabels,
			CustomerName:  reservation.CustomerName,
			CustomerEmail: reservation.CustomerEmail,
			CustomerPhone: reservation.CustomerPhone,
			TotalAmount:   reservation.TotalAmount,
			BookingTime:   now,
			Status:        tickets.StatusActive,
		}
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		if err := occupySeats(tx, reservation.EventID, labels); err != nil {
			return err
		}

		if err := tx.Where("payment_id = ?", paymentID).Delete(&PendingReservation{}).Error; err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}

		ticket = t
		return nil
	})

	return ticket, err
}

// CreateTicket books seats immediately, with the same seat locking and
// conflict check as the payment path.
func (r *repository) CreateTicket(ctx context.Context, ticket *tickets.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		labels := ticket.SeatList()
		if err := lockAndCheckSeats(tx, ticket.EventID, labels); err != nil {
			return err
		}
		if err := tx.Create(ticket).Error; err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		return occupySeats(tx, ticket.EventID, labels)
	})
}

func (r *repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&PendingReservation{})
	return res.RowsAffected, res.Error
}

// lockAndCheckSeats locks the selected seat rows FOR UPDATE and verifies every
// seat exists and is still free. Concurrent confirmations of overlapping
// selections serialize on these row locks, so only one can win.
func lockAndCheckSeats(tx *gorm.DB, eventID uuid.UUID, labels []string) error {
	if len(labels) == 0 {
		return ErrEmptySelection
	}

	var rows []seats.Seat
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ? AND seat_label IN ?", eventID, labels).
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to lock seats: %w", err)
	}

	if len(rows) != len(labels) {
		return ErrSeatNotFound
	}

	var taken []string
	for i := range rows {
		if rows[i].Status != seats.StatusFree {
			taken = append(taken, rows[i].SeatLabel)
		}
	}
	if len(taken) > 0 {
		sort.Strings(taken)
		return &ConflictError{Labels: taken}
	}
	return nil
}

func occupySeats(tx *gorm.DB, eventID uuid.UUID, labels []string) error {
	err := tx.Model(&seats.Seat{}).
		Where("event_id = ? AND seat_label IN ?", eventID, labels).
		Updates(map[string]interface{}{"status": seats.StatusOccupied, "updated_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("failed to mark seats occupied: %w", err)
	}
	return nil
}
