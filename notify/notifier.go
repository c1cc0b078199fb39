// Package notify emails students about their bookings.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/meinhoongagan/tutor-booking/models"
	"github.com/meinhoongagan/tutor-booking/utils"
	"go.uber.org/zap"
)

var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<p>Dear {{.Name}},</p>
<p>Your booking for <strong>{{.Subject}}</strong> is confirmed.</p>
<ul>
	<li><strong>When:</strong> {{.When}}</li>
	<li><strong>Session:</strong> {{.SessionType}}</li>
	{{if .Location}}<li><strong>Location:</strong> {{.Location}}</li>{{end}}
	<li><strong>Status:</strong> {{.Status}}</li>
</ul>
<p>If you need to cancel, you can do so from your bookings page.</p>
`))

	reminderTmpl = template.Must(template.New("reminder").Parse(`
<p>Dear {{.Name}},</p>
<p>This is a reminder that your <strong>{{.Subject}}</strong> session starts in about an hour.</p>
<ul>
	<li><strong>When:</strong> {{.When}}</li>
	<li><strong>Session:</strong> {{.SessionType}}</li>
	{{if .Location}}<li><strong>Location:</strong> {{.Location}}</li>{{end}}
</ul>
<p>See you soon.</p>
`))
)

type emailData struct {
	Name        string
	Subject     string
	When        string
	SessionType models.SessionMode
	Location    string
	Status      models.BookingStatus
}

// Notifier renders booking emails and hands them to a Mailer.
type Notifier struct {
	mailer utils.Mailer
	zone   *time.Location
	logger *zap.Logger
	wg     sync.WaitGroup
}

func New(mailer utils.Mailer, zone *time.Location, logger *zap.Logger) *Notifier {
	if zone == nil {
		zone = time.UTC
	}
	return &Notifier{mailer: mailer, zone: zone, logger: logger}
}

// BookingConfirmed sends the confirmation email in the background.
func (n *Notifier) BookingConfirmed(b *models.Booking) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(b, "Booking confirmed", confirmationTmpl); err != nil {
			n.logger.Error("Failed to send booking confirmation", zap.String("booking_id", b.ID), zap.Error(err))
			return
		}
		n.logger.Info("Sent booking confirmation", zap.String("booking_id", b.ID))
	}()
}

// SendReminder sends the one-hour reminder synchronously.
func (n *Notifier) SendReminder(b *models.Booking) error {
	return n.send(b, "Reminder: upcoming session", reminderTmpl)
}

// Wait blocks until all background sends have finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) send(b *models.Booking, subjectLine string, tmpl *template.Template) error {
	if b.User == nil || b.Subject == nil || b.Schedule == nil {
		return fmt.Errorf("booking %s is missing user, subject or schedule", b.ID)
	}

	data := emailData{
		Name:        b.User.Name,
		Subject:     b.Subject.Name,
		When:        utils.FormatSlot(b.Schedule.StartTime, b.Schedule.EndTime, n.zone),
		SessionType: b.SessionType,
		Location:    b.Location,
		Status:      b.Status,
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}
	return n.mailer.Send(b.User.Email, subjectLine+" - "+b.Subject.Name, body.String())
}
