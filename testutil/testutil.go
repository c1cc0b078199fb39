// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/meinhoongagan/tutor-booking/db"
	"github.com/meinhoongagan/tutor-booking/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that is closed with the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return conn
}

func NewLogger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}

// CreateUser stores a user whose password is "password".
func CreateUser(t testing.TB, conn *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Name: email, Email: email, Password: string(hash), Role: role}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateSubject(t testing.TB, conn *gorm.DB, name string, modes ...models.SessionMode) *models.Subject {
	t.Helper()

	if len(modes) == 0 {
		modes = []models.SessionMode{models.SessionOnline}
	}
	subject := &models.Subject{Name: name, Price: 20, Currency: "USD", SessionMode: modes}
	if models.SessionModes(modes).Has(models.SessionInHouse) {
		subject.Location = "Main campus"
	}
	if err := conn.Create(subject).Error; err != nil {
		t.Fatalf("create subject: %v", err)
	}
	return subject
}

func CreateSchedule(t testing.TB, conn *gorm.DB, subjectID string, start time.Time) *models.Schedule {
	t.Helper()

	schedule := &models.Schedule{SubjectID: subjectID, StartTime: start, EndTime: start.Add(time.Hour)}
	if err := conn.Create(schedule).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	return schedule
}
