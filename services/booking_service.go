package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meinhoongagan/tutor-booking/db"
	"github.com/meinhoongagan/tutor-booking/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingNotifier is told about new bookings. Implementations must not block.
type BookingNotifier interface {
	BookingConfirmed(b *models.Booking)
}

type BookingService struct {
	db       *gorm.DB
	notifier BookingNotifier
	logger   *zap.Logger
}

func NewBookingService(conn *gorm.DB, notifier BookingNotifier, logger *zap.Logger) *BookingService {
	return &BookingService{db: conn, notifier: notifier, logger: logger}
}

type CreateBookingInput struct {
	SubjectID   string             `json:"subjectId"`
	ScheduleID  string             `json:"scheduleId"`
	SessionType models.SessionMode `json:"sessionType"`
	Location    string             `json:"location"`
}

// Create books a schedule slot for userID. The slot check runs in the same
// transaction as the insert and the partial unique index on bookings rejects
// a concurrent second claim, so at most one active booking per slot exists.
func (s *BookingService) Create(ctx context.Context, userID string, in CreateBookingInput) (*models.Booking, error) {
	if in.ScheduleID == "" {
		return nil, invalid("Schedule is required")
	}
	if in.SessionType == "" {
		in.SessionType = models.SessionOnline
	}
	if !in.SessionType.Valid() {
		return nil, invalid("Unknown session type %q", in.SessionType)
	}

	var booking *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var schedule models.Schedule
		if err := tx.Preload("Subject").First(&schedule, "id = ?", in.ScheduleID).Error; err != nil {
			if db.IsNotFound(err) {
				return notFound("Schedule")
			}
			return fmt.Errorf("get schedule: %w", err)
		}
		if schedule.Subject == nil {
			return notFound("Subject")
		}
		if in.SubjectID != "" && in.SubjectID != schedule.SubjectID {
			return invalid("Schedule does not belong to this subject")
		}
		subject := schedule.Subject

		if !subject.SessionMode.Has(in.SessionType) {
			return invalid("This subject is not offered as %s", in.SessionType)
		}
		location := strings.TrimSpace(in.Location)
		if in.SessionType == models.SessionInHouse {
			if location == "" {
				location = subject.Location
			}
		} else {
			location = ""
		}

		var active int64
		err := tx.Model(&models.Booking{}).
			Where("schedule_id = ? AND status <> ?", schedule.ID, models.StatusCancelled).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("check slot: %w", err)
		}
		if active > 0 {
			return ErrSlotUnavailable
		}

		booking = &models.Booking{
			UserID:      userID,
			SubjectID:   schedule.SubjectID,
			ScheduleID:  schedule.ID,
			SessionType: in.SessionType,
			Location:    location,
			Status:      models.StatusConfirmed,
		}
		if err := tx.Create(booking).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			s.logger.Info("Slot already booked",
				zap.String("schedule_id", in.ScheduleID),
				zap.String("user_id", userID),
			)
		}
		return nil, err
	}

	s.logger.Info("Slot booked",
		zap.String("booking_id", booking.ID),
		zap.String("user_id", userID),
		zap.String("schedule_id", booking.ScheduleID),
		zap.String("status", string(booking.Status)),
	)

	full, err := s.load(ctx, booking.ID)
	if err != nil {
		s.logger.Error("Failed to reload booking", zap.String("booking_id", booking.ID), zap.Error(err))
		return booking, nil
	}
	if s.notifier != nil {
		s.notifier.BookingConfirmed(full)
	}
	return full, nil
}

// Get returns a booking visible to the actor.
func (s *BookingService) Get(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canAccess(booking) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Subject").
		Preload("Schedule").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

type BookingFilter struct {
	Status models.BookingStatus
}

func (s *BookingService) ListAll(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).
		Preload("User").
		Preload("Subject").
		Preload("Schedule").
		Order("created_at desc")
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, invalid("Unknown booking status %q", f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus overwrites the status for the owner or an admin. Any valid
// status may replace any other; reactivating a cancelled booking fails when
// its slot has been taken meanwhile.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, actor Actor) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("Booking")
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !actor.canAccess(&booking) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, invalid("Status must be PENDING, CONFIRMED or CANCELLED")
	}

	previous := booking.Status
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		if db.IsDuplicateKey(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	booking.Status = status

	s.logger.Info("Booking status changed",
		zap.String("booking_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
		zap.String("by", actor.UserID),
	)
	return &booking, nil
}

// DueReminders returns confirmed bookings starting within [from, to] that have
// not been reminded yet.
func (s *BookingService) DueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	starting := s.db.WithContext(ctx).Model(&models.Schedule{}).
		Select("id").
		Where("start_time BETWEEN ? AND ?", from.UTC(), to.UTC())

	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Subject").
		Preload("Schedule").
		Where("status = ? AND reminder_sent_at IS NULL", models.StatusConfirmed).
		Where("schedule_id IN (?)", starting).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("find due reminders: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) MarkReminded(ctx context.Context, id string, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("reminder_sent_at", at.UTC()).Error
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}

func (s *BookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Subject").
		Preload("Schedule").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("Booking")
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}
