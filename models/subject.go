package models

type Subject struct {
	Base
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description"`
	Price       float64      `json:"price" gorm:"not null;default:0"`
	Currency    string       `json:"currency"`
	SessionMode SessionModes `json:"sessionMode" gorm:"type:text;not null"`
	Location    string       `json:"location"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Teachers    []Teacher    `json:"teachers" gorm:"foreignKey:SubjectID"`
	Schedules   []Schedule   `json:"schedules,omitempty" gorm:"foreignKey:SubjectID"`
}

// Teacher belongs to exactly one subject.
type Teacher struct {
	Base
	SubjectID  string `json:"subjectId" gorm:"size:36;not null;index"`
	Name       string `json:"name" gorm:"not null"`
	Phone      string `json:"phone"`
	Experience string `json:"experience"`
}
