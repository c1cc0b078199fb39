package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Active bookings hold their schedule slot.
func (s BookingStatus) Active() bool {
	return s != StatusCancelled
}

// At most one active booking may reference a schedule; the partial unique
// index idx_bookings_active_schedule is created by db.Migrate.
type Booking struct {
	Base
	UserID         string        `json:"userId" gorm:"size:36;not null;index"`
	User           *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SubjectID      string        `json:"subjectId" gorm:"size:36;not null;index"`
	Subject        *Subject      `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	ScheduleID     string        `json:"scheduleId" gorm:"size:36;not null"`
	Schedule       *Schedule     `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
	SessionType    SessionMode   `json:"sessionType" gorm:"type:varchar(16);not null"`
	Location       string        `json:"location"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	ReminderSentAt *time.Time    `json:"reminderSentAt,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if err := b.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

func (b *Booking) OwnedBy(userID string) bool {
	return b.UserID == userID
}
