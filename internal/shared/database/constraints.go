package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints that AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// uuid_generate_v4() defaults on the models need this.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// A physical seat exists once per auditorium.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_seats_auditorium_row_number
		ON seats (auditorium_id, row_label, seat_number);
	`).Error
	if err != nil {
		return err
	}

	// Availability lookups scan reservation seats by showtime.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservation_seats_showtime_seat
		ON reservation_seats (showtime_id, seat_id);
	`).Error
	if err != nil {
		return err
	}

	// Lower-cased unique email; signup normalizes but the database is the backstop.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower
		ON users (LOWER(email));
	`).Error
	if err != nil {
		return err
	}

	return nil
}
