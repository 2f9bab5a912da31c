package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints the booking flow relies on beyond
// what AutoMigrate produces
func MigrateConstraints(db *gorm.DB) error {
	// One seat label per event; the second insert of the same label fails even
	// if two seat-map generations race.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_event_seat_label
		ON seats (event_id, seat_label);
	`).Error
	if err != nil {
		return err
	}

	// The sweeper scans by expiry
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_pending_reservations_expires_at
		ON pending_reservations (expires_at);
	`).Error
	if err != nil {
		return err
	}

	// Admin sales aggregates group by event and filter by status
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_event_status
		ON tickets (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
