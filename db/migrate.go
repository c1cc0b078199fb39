package db

import (
	"fmt"

	"github.com/meinhoongagan/tutor-booking/models"
	"gorm.io/gorm"
)

// activeScheduleIndex guarantees at most one non-cancelled booking per schedule.
// PostgreSQL and SQLite both support partial unique indexes with this syntax.
const activeScheduleIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_schedule
	ON bookings (schedule_id) WHERE status <> 'CANCELLED'`

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Teacher{},
		&models.Schedule{},
		&models.Booking{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := conn.Exec(activeScheduleIndex).Error; err != nil {
		return fmt.Errorf("create active booking index: %w", err)
	}
	return nil
}
