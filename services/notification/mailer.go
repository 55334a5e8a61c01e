package notification

import (
	"context"
	"fmt"

	"curbe/config"
	"curbe/models"

	"gopkg.in/gomail.v2"
)

// MailNotificationService sends booking confirmations and reminders over SMTP.
type MailNotificationService struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailNotificationService builds a mailer from the app configuration.
func NewMailNotificationService() *MailNotificationService {
	cfg := config.AppConfig
	return &MailNotificationService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (s *MailNotificationService) SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error {
	subject := "Your appointment request was received"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your appointment request for %s at %s. "+
			"You'll get another email once it is confirmed.\n",
		appt.FullName, appt.Date, appt.Time,
	)
	return s.send(appt.Email, subject, body)
}

func (s *MailNotificationService) SendBookingReminder(ctx context.Context, appt *models.Appointment) error {
	subject := "Appointment reminder"
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder for your appointment on %s at %s.\n",
		appt.FullName, appt.Date, appt.Time,
	)
	return s.send(appt.Email, subject, body)
}

func (s *MailNotificationService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
