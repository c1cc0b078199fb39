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

func TestStatsSummary(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	bookings := services.NewBookingService(conn, nil, testutil.NewLogger(t))

	a := testutil.CreateUser(t, conn, "a@example.com", models.RoleUser)
	b := testutil.CreateUser(t, conn, "b@example.com", models.RoleUser)
	testutil.CreateUser(t, conn, "admin@example.com", models.RoleAdmin)
	subject := testutil.CreateSubject(t, conn, "Math")
	testutil.CreateSubject(t, conn, "Art")
	s1 := testutil.CreateSchedule(t, conn, subject.ID, slotStart)
	s2 := testutil.CreateSchedule(t, conn, subject.ID, slotStart.Add(time.Hour))
	testutil.CreateSchedule(t, conn, subject.ID, slotStart.Add(2*time.Hour))

	_, err := bookings.Create(ctx, a.ID, services.CreateBookingInput{ScheduleID: s1.ID})
	require.NoError(t, err)
	second, err := bookings.Create(ctx, b.ID, services.CreateBookingInput{ScheduleID: s2.ID})
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(ctx, second.ID, models.StatusCancelled, services.Actor{UserID: b.ID, Role: models.RoleUser})
	require.NoError(t, err)

	stats, err := services.NewStatsService(conn).Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Subjects)
	assert.EqualValues(t, 3, stats.Schedules)
	assert.EqualValues(t, 2, stats.AvailableSlots)
	assert.EqualValues(t, 2, stats.Bookings)
	assert.EqualValues(t, 2, stats.Students)
	assert.EqualValues(t, 1, stats.BookingsByStatus[models.StatusConfirmed])
	assert.EqualValues(t, 1, stats.BookingsByStatus[models.StatusCancelled])
	assert.EqualValues(t, 0, stats.BookingsByStatus[models.StatusPending])
}
