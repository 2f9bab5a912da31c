package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PendingReservation holds seats for a customer while payment is in flight.
// The row is keyed by the payment id handed to the payment page; it either
// becomes a ticket on confirmation or disappears after ExpiresAt.
type PendingReservation struct {
	PaymentID     string    `gorm:"primaryKey;size:64" json:"payment_id"`
	BookingRef    string    `gorm:"size:32;not null" json:"booking_ref"`
	EventID       uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatLabels    string    `gorm:"not null" json:"seat_labels"`
	CustomerName  string    `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string    `gorm:"not null;size:255" json:"customer_email"`
	CustomerPhone string    `gorm:"size:64" json:"customer_phone"`
	TotalAmount   int64     `gorm:"not null" json:"total_amount"`
	ExpiresAt     time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName sets the table name for PendingReservation
func (PendingReservation) TableName() string {
	return "pending_reservations"
}

// SeatList splits the stored seat labels into the ordered list
func (p *PendingReservation) SeatList() []string {
	if p.SeatLabels == "" {
		return nil
	}
	return strings.Split(p.SeatLabels, ",")
}

// Customer is the contact information captured at checkout
type Customer struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,max=64"`
}

// CreatePaymentRequest opens a payment session holding the selected seats
type CreatePaymentRequest struct {
	EventID  string   `json:"event_id" binding:"required,uuid"`
	Seats    []string `json:"seats" binding:"required,min=1,dive,required"`
	Customer Customer `json:"customer" binding:"required"`
}

// ConfirmPaymentRequest finalizes a payment session into a ticket
type ConfirmPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

// DirectBookingRequest books seats immediately, without a payment session
type DirectBookingRequest struct {
	EventID  string   `json:"event_id" binding:"required,uuid"`
	Seats    []string `json:"seats" binding:"required,min=1,dive,required"`
	Customer Customer `json:"customer" binding:"required"`
}

// PaymentResponse is returned when a payment session is opened. Amount is
// computed server-side from current seat prices.
type PaymentResponse struct {
	PaymentID  string    `json:"payment_id"`
	BookingRef string    `json:"booking_ref"`
	Amount     int64     `json:"amount"`
	ExpiresAt  time.Time `json:"expires_at"`
	PaymentURL string    `json:"payment_url,omitempty"`
}

// BookingConfirmation is the customer-facing result of a successful booking
type BookingConfirmation struct {
	TicketID    string    `json:"ticket_id"`
	EventID     string    `json:"event_id"`
	Seats       []string  `json:"seats"`
	TotalAmount int64     `json:"total_amount"`
	BookingTime time.Time `json:"booking_time"`
	Status      string    `json:"status"`
}
