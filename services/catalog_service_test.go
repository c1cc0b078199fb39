package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/services"
	"github.com/meinhoongagan/tutor-booking/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubjectWithTeachers(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	svc := services.NewCatalogService(conn, testutil.NewLogger(t))

	subject, err := svc.CreateSubject(ctx, services.SubjectInput{
		Name:        " Math ",
		Description: "Algebra and geometry",
		Price:       25,
		Currency:    "usd",
		SessionMode: models.SessionModes{models.SessionOnline, models.SessionInHouse},
		Location:    "Room 4",
		Teachers: []services.TeacherInput{
			{Name: "Ms. Lee", Phone: "555-0101", Experience: "10 years"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Math", subject.Name)
	assert.Equal(t, "USD", subject.Currency)

	loaded, err := svc.GetSubject(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Teachers, 1)
	assert.Equal(t, "Ms. Lee", loaded.Teachers[0].Name)
	assert.Equal(t, "Room 4", loaded.Location)
	assert.True(t, loaded.SessionMode.Has(models.SessionInHouse))

	list, err := svc.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSubjectValidation(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	svc := services.NewCatalogService(conn, testutil.NewLogger(t))

	cases := []struct {
		name string
		in   services.SubjectInput
	}{
		{"missing name", services.SubjectInput{SessionMode: models.SessionModes{models.SessionOnline}}},
		{"negative price", services.SubjectInput{Name: "A", Price: -1, SessionMode: models.SessionModes{models.SessionOnline}}},
		{"no modes", services.SubjectInput{Name: "A"}},
		{"unknown mode", services.SubjectInput{Name: "A", SessionMode: models.SessionModes{"PHONE"}}},
		{"in-house without location", services.SubjectInput{Name: "A", SessionMode: models.SessionModes{models.SessionInHouse}}},
		{"teacher without name", services.SubjectInput{
			Name:        "A",
			SessionMode: models.SessionModes{models.SessionOnline},
			Teachers:    []services.TeacherInput{{Phone: "1"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *services.ValidationError
			_, err := svc.CreateSubject(ctx, tc.in)
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestUpdateSubjectClearsLocationForOnlineOnly(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	svc := services.NewCatalogService(conn, testutil.NewLogger(t))
	subject := testutil.CreateSubject(t, conn, "Piano", models.SessionInHouse)

	updated, err := svc.UpdateSubject(ctx, subject.ID, services.SubjectInput{
		Name:        "Piano online",
		Price:       30,
		SessionMode: models.SessionModes{models.SessionOnline},
		Location:    "Studio",
	})
	require.NoError(t, err)
	assert.Equal(t, "Piano online", updated.Name)
	assert.Empty(t, updated.Location)
	assert.Equal(t, "USD", updated.Currency)

	_, err = svc.UpdateSubject(ctx, "missing", services.SubjectInput{
		Name:        "X",
		SessionMode: models.SessionModes{models.SessionOnline},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteSubjectCascades(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	catalog := services.NewCatalogService(conn, testutil.NewLogger(t))
	bookings := services.NewBookingService(conn, nil, testutil.NewLogger(t))

	user := testutil.CreateUser(t, conn, "a@example.com", models.RoleUser)
	doomed := testutil.CreateSubject(t, conn, "Math")
	kept := testutil.CreateSubject(t, conn, "Art")
	slot := testutil.CreateSchedule(t, conn, doomed.ID, slotStart)
	testutil.CreateSchedule(t, conn, doomed.ID, slotStart.Add(time.Hour))
	keptSlot := testutil.CreateSchedule(t, conn, kept.ID, slotStart)

	_, err := catalog.AddTeacher(ctx, doomed.ID, services.TeacherInput{Name: "Mr. Kim"})
	require.NoError(t, err)
	booking, err := bookings.Create(ctx, user.ID, services.CreateBookingInput{ScheduleID: slot.ID})
	require.NoError(t, err)
	keptBooking, err := bookings.Create(ctx, user.ID, services.CreateBookingInput{ScheduleID: keptSlot.ID})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteSubject(ctx, doomed.ID))

	_, err = catalog.GetSubject(ctx, doomed.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	var schedules int64
	require.NoError(t, conn.Model(&models.Schedule{}).Where("subject_id = ?", doomed.ID).Count(&schedules).Error)
	assert.Zero(t, schedules)

	var teachers int64
	require.NoError(t, conn.Model(&models.Teacher{}).Where("subject_id = ?", doomed.ID).Count(&teachers).Error)
	assert.Zero(t, teachers)

	var cancelled models.Booking
	require.NoError(t, conn.First(&cancelled, "id = ?", booking.ID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	var untouched models.Booking
	require.NoError(t, conn.First(&untouched, "id = ?", keptBooking.ID).Error)
	assert.Equal(t, models.StatusConfirmed, untouched.Status)

	assert.ErrorIs(t, catalog.DeleteSubject(ctx, doomed.ID), services.ErrNotFound)
}

func TestTeachers(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	svc := services.NewCatalogService(conn, testutil.NewLogger(t))
	subject := testutil.CreateSubject(t, conn, "Math")

	teacher, err := svc.AddTeacher(ctx, subject.ID, services.TeacherInput{Name: " Ms. Lee ", Experience: "5 years"})
	require.NoError(t, err)
	assert.Equal(t, "Ms. Lee", teacher.Name)
	assert.Equal(t, subject.ID, teacher.SubjectID)

	_, err = svc.AddTeacher(ctx, "missing", services.TeacherInput{Name: "X"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	other := testutil.CreateSubject(t, conn, "Art")
	assert.ErrorIs(t, svc.RemoveTeacher(ctx, other.ID, teacher.ID), services.ErrNotFound)

	require.NoError(t, svc.RemoveTeacher(ctx, subject.ID, teacher.ID))
	assert.ErrorIs(t, svc.RemoveTeacher(ctx, subject.ID, teacher.ID), services.ErrNotFound)
}

func TestSetSubjectImage(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	svc := services.NewCatalogService(conn, testutil.NewLogger(t))
	subject := testutil.CreateSubject(t, conn, "Math")

	updated, err := svc.SetSubjectImage(ctx, subject.ID, "https://img.example.com/math.png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/math.png", updated.ImageURL)

	loaded, err := svc.GetSubject(ctx, subject.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/math.png", loaded.ImageURL)

	_, err = svc.SetSubjectImage(ctx, "missing", "x")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
