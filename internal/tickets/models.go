package tickets

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the ticket lifecycle state. Transitions are one-directional:
// active → used or active → cancelled, nothing leaves used/cancelled.
type Status string

const (
	StatusActive    Status = "active"
	StatusUsed      Status = "used"
	StatusCancelled Status = "cancelled"
)

// Ticket is a confirmed booking. The ID doubles as the booking reference
// printed in the QR code.
type Ticket struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	EventID       uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatLabels    string    `gorm:"not null" json:"seat_labels"`
	CustomerName  string    `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string    `gorm:"not null;size:255" json:"customer_email"`
	CustomerPhone string    `gorm:"size:64" json:"customer_phone"`
	TotalAmount   int64     `gorm:"not null" json:"total_amount"`
	BookingTime   time.Time `gorm:"not null" json:"booking_time"`
	Status        Status    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

// SeatList splits the stored seat labels into the ordered list
func (t *Ticket) SeatList() []string {
	if t.SeatLabels == "" {
		return nil
	}
	return strings.Split(t.SeatLabels, ",")
}

func (t *Ticket) IsActive() bool {
	return t.Status == StatusActive
}

// TicketWithEvent carries the joined event fields for projections
type TicketWithEvent struct {
	Ticket
	EventName string
	EventDate time.Time
}

// TicketProjection is the verifier-facing view of a ticket
type TicketProjection struct {
	ID          string    `json:"id"`
	Event       string    `json:"event"`
	EventDate   time.Time `json:"event_date"`
	Customer    string    `json:"customer"`
	Seats       []string  `json:"seats"`
	Total       int64     `json:"total"`
	BookingTime time.Time `json:"booking_time"`
	Status      Status    `json:"status"`
}

// VerificationResponse is returned by the ticket lookup endpoint
type VerificationResponse struct {
	Valid  bool              `json:"valid"`
	Ticket *TicketProjection `json:"ticket,omitempty"`
}

// ToProjection converts a joined row to the verifier view
func (t *TicketWithEvent) ToProjection() TicketProjection {
	return TicketProjection{
		ID:          t.ID,
		Event:       t.EventName,
		EventDate:   t.EventDate,
		Customer:    t.CustomerName,
		Seats:       t.SeatList(),
		Total:       t.TotalAmount,
		BookingTime: t.BookingTime,
		Status:      t.Status,
	}
}
