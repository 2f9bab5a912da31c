package database

import (
	"hallbook/internal/booking"
	"hallbook/internal/events"
	"hallbook/internal/seats"
	"hallbook/internal/stats"
	"hallbook/internal/tickets"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Event ids default to uuid_generate_v4 in the schema
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&events.Event{},
		&seats.Seat{},
		&tickets.Ticket{},
		&booking.PendingReservation{},
		&stats.Visit{},
	)
}
