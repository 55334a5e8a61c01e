package notification

import (
	"context"

	"curbe/models"
)

// NotificationService delivers customer-facing messages for the booking flow.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
	SendBookingReminder(ctx context.Context, appt *models.Appointment) error
}
