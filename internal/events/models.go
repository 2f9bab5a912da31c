package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminEventResponse adds sales aggregates for the admin listing
type AdminEventResponse struct {
	EventResponse
	TicketsSold  int64 `json:"tickets_sold"`
	TotalRevenue int64 `json:"total_revenue"`
}

// EventSales carries per-event ticket aggregates from the repository
type EventSales struct {
	Event
	TicketsSold  int64
	TotalRevenue int64
}

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=255"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"max=2000"`
	ImageURL    string    `json:"image_url" binding:"max=500"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,max=500"`
}

// ToResponse converts an Event to its API representation
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Date:        e.Date,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
