package notifications

import "time"

// EventType identifies a booking lifecycle notification
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventTicketUsed       EventType = "ticket.used"
	EventTicketCancelled  EventType = "ticket.cancelled"
)

// BookingEvent is the message published for every booking lifecycle change.
// Downstream consumers (mailers, dashboards) key off Type.
type BookingEvent struct {
	Type          EventType `json:"type"`
	BookingID     string    `json:"booking_id"`
	EventID       string    `json:"event_id,omitempty"`
	SeatLabels    []string  `json:"seat_labels,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	TotalAmount   int64     `json:"total_amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
