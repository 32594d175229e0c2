package db

import (
	"fmt"
	"log"

	"github.com/visitdesk/booking-engine/models"
)

func Migrate() {
	// Initialize DB connection if the caller has not already
	if DB == nil {
		Init()
	}

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.AvailabilityBlock{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// The core correctness guarantee: at most one non-cancelled appointment
	// per (date, start time). AutoMigrate cannot express a partial index,
	// so it is created directly. The insert path relies on this constraint,
	// not on pre-checks, to decide slot races.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (appointment_date, start_time)
		WHERE status <> 'cancelled'
	`).Error
	if err != nil {
		log.Fatal("Failed to create booking uniqueness index: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
