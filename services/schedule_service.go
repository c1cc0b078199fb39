package services

import (
	"context"
	"fmt"
	"time"

	"github.com/meinhoongagan/tutor-booking/db"
	"github.com/meinhoongagan/tutor-booking/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScheduleService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewScheduleService(conn *gorm.DB, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{db: conn, logger: logger}
}

type ScheduleInput struct {
	SubjectID string    `json:"subjectId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func (in ScheduleInput) validate() error {
	if in.SubjectID == "" {
		return invalid("Subject is required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return invalid("Start and end time are required")
	}
	if !in.StartTime.Before(in.EndTime) {
		return invalid("Start time must be before end time")
	}
	return nil
}

type ScheduleFilter struct {
	SubjectID string
	// AvailableOnly hides slots held by an active booking.
	AvailableOnly bool
	// From hides slots starting before the given time when set.
	From time.Time
}

func (s *ScheduleService) List(ctx context.Context, f ScheduleFilter) ([]models.Schedule, error) {
	q := s.db.WithContext(ctx).Preload("Subject").Order("start_time asc")
	if f.SubjectID != "" {
		q = q.Where("subject_id = ?", f.SubjectID)
	}
	if !f.From.IsZero() {
		q = q.Where("start_time >= ?", f.From)
	}
	if f.AvailableOnly {
		q = q.Where("NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.schedule_id = schedules.id AND bookings.status <> ?)",
			models.StatusCancelled)
	}

	var schedules []models.Schedule
	if err := q.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := s.db.WithContext(ctx).Preload("Subject").First(&schedule, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("Schedule")
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return &schedule, nil
}

func (s *ScheduleService) Create(ctx context.Context, in ScheduleInput) (*models.Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := ensureSubject(ctx, s.db, in.SubjectID); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		SubjectID: in.SubjectID,
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.logger.Info("Schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.String("subject_id", schedule.SubjectID),
		zap.Time("start_time", schedule.StartTime),
	)
	return schedule, nil
}

// Update rewrites the slot times and subject. A slot held by an active booking
// keeps its subject, since the booking's subject and session type were checked
// against it.
func (s *ScheduleService) Update(ctx context.Context, id string, in ScheduleInput) (*models.Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var schedule models.Schedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&schedule, "id = ?", id).Error; err != nil {
			if db.IsNotFound(err) {
				return notFound("Schedule")
			}
			return fmt.Errorf("get schedule: %w", err)
		}
		if in.SubjectID != schedule.SubjectID {
			if err := ensureSubject(ctx, tx, in.SubjectID); err != nil {
				return err
			}
			var active int64
			err := tx.Model(&models.Booking{}).
				Where("schedule_id = ? AND status <> ?", id, models.StatusCancelled).
				Count(&active).Error
			if err != nil {
				return fmt.Errorf("check bookings: %w", err)
			}
			if active > 0 {
				return invalid("Cannot move a booked slot to another subject")
			}
		}

		schedule.SubjectID = in.SubjectID
		schedule.StartTime = in.StartTime.UTC()
		schedule.EndTime = in.EndTime.UTC()
		if err := tx.Save(&schedule).Error; err != nil {
			return fmt.Errorf("update schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Delete removes the slot and cancels any active booking that held it.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Schedule{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete schedule: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("Schedule")
		}
		return cancelActiveBookings(tx, id)
	})
}
