package models

import (
	"time"
)

// Schedule is a bookable time slot of a subject.
type Schedule struct {
	Base
	SubjectID string    `json:"subjectId" gorm:"size:36;not null;index"`
	Subject   *Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	StartTime time.Time `json:"startTime" gorm:"not null;index"`
	EndTime   time.Time `json:"endTime" gorm:"not null"`
}

func (s *Schedule) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
