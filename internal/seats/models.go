package seats

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Category classifies seat pricing tiers
type Category string

const (
	CategoryStandard Category = "standard"
	CategoryVIP      Category = "vip"
)

// Status is the seat occupancy state. Occupied/blocked are the source of
// truth for availability once a ticket exists; pending reservations do not
// change seat status.
type Status string

const (
	StatusFree     Status = "free"
	StatusOccupied Status = "occupied"
	StatusBlocked  Status = "blocked"
)

// Seat defines the structure for individual seats
type Seat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_seat_label" json:"event_id"`
	RowLabel   string    `gorm:"not null" json:"row_label"`
	SeatNumber int       `gorm:"not null" json:"seat_number"`
	SeatLabel  string    `gorm:"not null;uniqueIndex:idx_event_seat_label" json:"seat_label"`
	Price      int64     `gorm:"not null" json:"price"`
	Category   Category  `gorm:"type:varchar(20);default:'standard'" json:"category"`
	Status     Status    `gorm:"type:varchar(20);default:'free'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsFree() bool {
	return s.Status == StatusFree
}

// Label builds a seat label from row letter and number, e.g. "A3"
func Label(rowLetter string, number int) string {
	return rowLetter + strconv.Itoa(number)
}

// UpdateSeatRequest is the admin seat edit payload
type UpdateSeatRequest struct {
	Price    *int64  `json:"price" binding:"omitempty,min=0"`
	Category *string `json:"category" binding:"omitempty,oneof=standard vip"`
	Status   *string `json:"status" binding:"omitempty,oneof=free occupied blocked"`
}

// BulkGenerateRequest regenerates an event's full seat map
type BulkGenerateRequest struct {
	Rows        int   `json:"rows" binding:"required,min=1"`
	SeatsPerRow int   `json:"seats_per_row" binding:"required,min=1"`
	BasePrice   int64 `json:"base_price" binding:"required,min=1"`
	VipRows     []int `json:"vip_rows"`
}

// SeatResponse for API responses
type SeatResponse struct {
	ID         string   `json:"id"`
	EventID    string   `json:"event_id"`
	RowLabel   string   `json:"row_label"`
	SeatNumber int      `json:"seat_number"`
	SeatLabel  string   `json:"seat_label"`
	Price      int64    `json:"price"`
	Category   Category `json:"category"`
	Status     Status   `json:"status"`
}

// ToResponse converts a Seat to its API representation
func (s *Seat) ToResponse() SeatResponse {
	return SeatResponse{
		ID:         s.ID.String(),
		EventID:    s.EventID.String(),
		RowLabel:   s.RowLabel,
		SeatNumber: s.SeatNumber,
		SeatLabel:  s.SeatLabel,
		Price:      s.Price,
		Category:   s.Category,
		Status:     s.Status,
	}
}
