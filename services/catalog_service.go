package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meinhoongagan/tutor-booking/db"
	"github.com/meinhoongagan/tutor-booking/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService manages subjects and their teachers.
type CatalogService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCatalogService(conn *gorm.DB, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: conn, logger: logger}
}

type TeacherInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Experience string `json:"experience"`
}

type SubjectInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Currency    string              `json:"currency"`
	SessionMode models.SessionModes `json:"sessionMode"`
	Location    string              `json:"location"`
	Teachers    []TeacherInput      `json:"teachers"`
}

func (in *SubjectInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.Location = strings.TrimSpace(in.Location)
	in.SessionMode = in.SessionMode.Normalize()

	if in.Name == "" {
		return invalid("Subject name is required")
	}
	if in.Price < 0 {
		return invalid("Price cannot be negative")
	}
	if len(in.SessionMode) == 0 {
		return invalid("Please select at least one session mode")
	}
	for _, m := range in.SessionMode {
		if !m.Valid() {
			return invalid("Unknown session mode %q", m)
		}
	}
	if in.SessionMode.Has(models.SessionInHouse) {
		if in.Location == "" {
			return invalid("Location is required for in-house sessions")
		}
	} else {
		in.Location = ""
	}
	return nil
}

func (in TeacherInput) toModel(subjectID string) (models.Teacher, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Teacher{}, invalid("Teacher name is required")
	}
	return models.Teacher{
		SubjectID:  subjectID,
		Name:       name,
		Phone:      strings.TrimSpace(in.Phone),
		Experience: strings.TrimSpace(in.Experience),
	}, nil
}

func (s *CatalogService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.db.WithContext(ctx).
		Preload("Teachers").
		Order("created_at desc").
		Find(&subjects).Error
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (s *CatalogService) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	err := s.db.WithContext(ctx).
		Preload("Teachers").
		Preload("Schedules", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_time asc") }).
		First(&subject, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("Subject")
		}
		return nil, fmt.Errorf("get subject: %w", err)
	}
	return &subject, nil
}

func (s *CatalogService) CreateSubject(ctx context.Context, in SubjectInput) (*models.Subject, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		SessionMode: in.SessionMode,
		Location:    in.Location,
	}
	for _, t := range in.Teachers {
		teacher, err := t.toModel("")
		if err != nil {
			return nil, err
		}
		subject.Teachers = append(subject.Teachers, teacher)
	}

	if err := s.db.WithContext(ctx).Create(subject).Error; err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}

	s.logger.Info("Subject created", zap.String("subject_id", subject.ID), zap.String("name", subject.Name))
	return subject, nil
}

// UpdateSubject replaces the editable fields. Teachers are managed separately.
func (s *CatalogService) UpdateSubject(ctx context.Context, id string, in SubjectInput) (*models.Subject, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, notFound("Subject")
		}
		return nil, fmt.Errorf("get subject: %w", err)
	}

	subject.Name = in.Name
	subject.Description = in.Description
	subject.Price = in.Price
	subject.SessionMode = in.SessionMode
	subject.Location = in.Location
	if in.Currency != "" {
		subject.Currency = in.Currency
	}

	if err := s.db.WithContext(ctx).Save(&subject).Error; err != nil {
		return nil, fmt.Errorf("update subject: %w", err)
	}
	return &subject, nil
}

// DeleteSubject removes the subject with its schedules and teachers. Active
// bookings on the removed schedules are cancelled rather than left pointing at
// a slot that no longer exists.
func (s *CatalogService) DeleteSubject(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.First(&subject, "id = ?", id).Error; err != nil {
			if db.IsNotFound(err) {
				return notFound("Subject")
			}
			return fmt.Errorf("get subject: %w", err)
		}

		scheduleIDs := tx.Model(&models.Schedule{}).Select("id").Where("subject_id = ?", id)
		if err := cancelActiveBookings(tx, scheduleIDs); err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.Schedule{}).Error; err != nil {
			return fmt.Errorf("delete schedules: %w", err)
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.Teacher{}).Error; err != nil {
			return fmt.Errorf("delete teachers: %w", err)
		}
		if err := tx.Delete(&subject).Error; err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Subject deleted", zap.String("subject_id", id))
	return nil
}

func (s *CatalogService) SetSubjectImage(ctx context.Context, id, url string) (*models.Subject, error) {
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(&models.Subject{}).Where("id = ?", id).Update("image_url", url).Error
	if err != nil {
		return nil, fmt.Errorf("update subject image: %w", err)
	}
	subject.ImageURL = url
	return subject, nil
}

func (s *CatalogService) AddTeacher(ctx context.Context, subjectID string, in TeacherInput) (*models.Teacher, error) {
	teacher, err := in.toModel(subjectID)
	if err != nil {
		return nil, err
	}
	if err := ensureSubject(ctx, s.db, subjectID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&teacher).Error; err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}
	return &teacher, nil
}

func (s *CatalogService) RemoveTeacher(ctx context.Context, subjectID, teacherID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND subject_id = ?", teacherID, subjectID).
		Delete(&models.Teacher{})
	if res.Error != nil {
		return fmt.Errorf("delete teacher: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("Teacher")
	}
	return nil
}

func ensureSubject(ctx context.Context, tx *gorm.DB, id string) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Subject{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check subject: %w", err)
	}
	if count == 0 {
		return notFound("Subject")
	}
	return nil
}

// cancelActiveBookings cancels the active bookings whose schedule_id is in scheduleIDs,
// which may be a single id or a subquery.
func cancelActiveBookings(tx *gorm.DB, scheduleIDs interface{}) error {
	err := tx.Model(&models.Booking{}).
		Where("schedule_id IN (?) AND status <> ?", scheduleIDs, models.StatusCancelled).
		Update("status", models.StatusCancelled).Error
	if err != nil {
		return fmt.Errorf("cancel bookings: %w", err)
	}
	return nil
}
