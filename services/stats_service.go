package services

import (
	"context"
	"fmt"

	"github.com/meinhoongagan/tutor-booking/models"
	"gorm.io/gorm"
)

type Stats struct {
	Subjects         int64                          `json:"subjects"`
	Schedules        int64                          `json:"schedules"`
	AvailableSlots   int64                          `json:"availableSlots"`
	Bookings         int64                          `json:"bookings"`
	BookingsByStatus map[models.BookingStatus]int64 `json:"bookingsByStatus"`
	Students         int64                          `json:"students"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(conn *gorm.DB) *StatsService {
	return &StatsService{db: conn}
}

// Summary returns the counters shown on the admin dashboard.
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	tx := s.db.WithContext(ctx)
	stats := &Stats{BookingsByStatus: map[models.BookingStatus]int64{
		models.StatusPending:   0,
		models.StatusConfirmed: 0,
		models.StatusCancelled: 0,
	}}

	if err := tx.Model(&models.Subject{}).Count(&stats.Subjects).Error; err != nil {
		return nil, fmt.Errorf("count subjects: %w", err)
	}
	if err := tx.Model(&models.Schedule{}).Count(&stats.Schedules).Error; err != nil {
		return nil, fmt.Errorf("count schedules: %w", err)
	}
	err := tx.Model(&models.Schedule{}).
		Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.schedule_id = schedules.id AND bookings.status <> ?)",
			models.StatusCancelled).
		Count(&stats.AvailableSlots).Error
	if err != nil {
		return nil, fmt.Errorf("count available slots: %w", err)
	}
	if err := tx.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&stats.Students).Error; err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	var rows []struct {
		Status models.BookingStatus
		Total  int64
	}
	err = tx.Model(&models.Booking{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	for _, r := range rows {
		stats.BookingsByStatus[r.Status] = r.Total
		stats.Bookings += r.Total
	}
	return stats, nil
}
