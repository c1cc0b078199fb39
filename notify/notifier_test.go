package notify_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func booking() *models.Booking {
	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	return &models.Booking{
		Base:        models.Base{ID: "b-1"},
		User:        &models.User{Name: "Ada", Email: "ada@example.com"},
		Subject:     &models.Subject{Name: "Math"},
		Schedule:    &models.Schedule{StartTime: start, EndTime: start.Add(time.Hour)},
		SessionType: models.SessionInHouse,
		Location:    "Room <4>",
		Status:      models.StatusConfirmed,
	}
}

func TestBookingConfirmedSendsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	n := notify.New(mailer, time.FixedZone("IST", 5*3600+1800), zaptest.NewLogger(t))

	n.BookingConfirmed(booking())
	n.Wait()

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "ada@example.com", mail.to)
	assert.Equal(t, "Booking confirmed - Math", mail.subject)
	assert.Contains(t, mail.body, "Dear Ada")
	assert.Contains(t, mail.body, "Mon, 04 Mar 2030 15:30 - 16:30 IST")
	assert.Contains(t, mail.body, "Room &lt;4&gt;")
	assert.Contains(t, mail.body, "CONFIRMED")
}

func TestSendReminder(t *testing.T) {
	mailer := &fakeMailer{}
	n := notify.New(mailer, nil, zaptest.NewLogger(t))

	b := booking()
	b.SessionType = models.SessionOnline
	b.Location = ""
	require.NoError(t, n.SendReminder(b))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Reminder: upcoming session - Math", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "10:00 - 11:00 UTC")
	assert.NotContains(t, mailer.sent[0].body, "Location")
}

func TestSendFailures(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	n := notify.New(mailer, nil, zaptest.NewLogger(t))

	assert.Error(t, n.SendReminder(booking()))

	incomplete := booking()
	incomplete.User = nil
	assert.Error(t, n.SendReminder(incomplete))

	// Background failures are logged, not returned.
	n.BookingConfirmed(booking())
	n.Wait()
}
