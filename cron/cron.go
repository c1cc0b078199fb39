package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reminders go out for sessions starting between 55 and 65 minutes from now.
const (
	reminderWindowStart = 55 * time.Minute
	reminderWindowEnd   = 65 * time.Minute
)

type ReminderSource interface {
	DueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

type ReminderSender interface {
	SendReminder(b *models.Booking) error
}

type Scheduler struct {
	cron     *cron.Cron
	bookings ReminderSource
	sender   ReminderSender
	logger   *zap.Logger
	now      func() time.Time
}

// New registers the reminder sweep on spec (standard five-field cron syntax).
func New(spec string, bookings ReminderSource, sender ReminderSender, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		bookings: bookings,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.SendReminders(context.Background()) }); err != nil {
		return nil, fmt.Errorf("add reminder job %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Cron scheduler started for booking reminders")
}

// Stop prevents new runs and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Cron scheduler stopped")
}

// SendReminders emails every booking that is due and returns how many were sent.
func (s *Scheduler) SendReminders(ctx context.Context) int {
	now := s.now()
	due, err := s.bookings.DueReminders(ctx, now.Add(reminderWindowStart), now.Add(reminderWindowEnd))
	if err != nil {
		s.logger.Error("Failed to fetch bookings for reminders", zap.Error(err))
		return 0
	}
	if len(due) > 0 {
		s.logger.Info("Found bookings for reminders", zap.Int("count", len(due)))
	}

	sent := 0
	for i := range due {
		b := &due[i]
		if err := s.sender.SendReminder(b); err != nil {
			s.logger.Error("Failed to send reminder", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		if err := s.bookings.MarkReminded(ctx, b.ID, now); err != nil {
			s.logger.Error("Failed to mark booking reminded", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
