package scheduling

import (
	"context"
	"time"

	appointmentRepo "curbe/database/repository/appointment"
	"curbe/models"
)

// ConfigProvider yields the effective availability configuration for a
// company. Implemented by the availability service.
type ConfigProvider interface {
	GetConfig(ctx context.Context, companyID string) (*models.AvailabilityConfig, error)
}

// BookingNotifier sends customer-facing messages after a successful booking.
// Delivery is best-effort and never fails the booking.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
}

// ReminderScheduler enqueues a reminder to fire ahead of the appointment start.
type ReminderScheduler interface {
	ScheduleReminder(appt *models.Appointment, fireAt time.Time) error
}

// SchedulingService is the availability and booking engine surface.
type SchedulingService interface {
	// GetSlots returns the full annotated slot list for one company date.
	// durationOverride of 0 means "use the configured duration".
	GetSlots(ctx context.Context, companyID, date string, durationOverride int) ([]models.Slot, error)
	// Book re-validates the requested slot under serialization per
	// (companyID, date) and commits it, or rejects with a SlotConflictError.
	Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	// ListAppointments is the staff list view, optionally filtered by date and status.
	ListAppointments(ctx context.Context, companyID, date, status string) ([]models.Appointment, error)
	// TransitionStatus applies a staff status change.
	TransitionStatus(ctx context.Context, companyID, appointmentID, status string) (*models.Appointment, error)
}

// DefaultSchedulingEngine is the production scheduling service.
type DefaultSchedulingEngine struct {
	Config       ConfigProvider
	Appointments appointmentRepo.AppointmentRepository
	Locker       SlotLocker
	Notifier     BookingNotifier   // optional
	Reminders    ReminderScheduler // optional

	// PhoneRegion is the default region for phone normalization ("US" if empty).
	PhoneRegion string
	// ReminderLead is how far before the appointment start a reminder fires.
	ReminderLead time.Duration

	// Now is the clock source; tests replace it. Defaults to time.Now.
	Now func() time.Time
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}

func (se *DefaultSchedulingEngine) GetSlots(ctx context.Context, companyID, date string, durationOverride int) ([]models.Slot, error) {
	cfg, err := se.Config.GetConfig(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if durationOverride > 0 {
		if !models.IsAllowedDuration(durationOverride) {
			return nil, NewValidationError(map[string]string{
				"duration": "must be one of the allowed appointment durations",
			})
		}
		scoped := *cfg
		scoped.DurationMinutes = durationOverride
		cfg = &scoped
	}

	existing, err := se.Appointments.ActiveByCompanyAndDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}

	slots, err := ComputeSlots(cfg, date, existing, se.now())
	if err != nil {
		return nil, NewValidationError(map[string]string{"date": err.Error()})
	}
	return slots, nil
}

func (se *DefaultSchedulingEngine) ListAppointments(ctx context.Context, companyID, date, status string) ([]models.Appointment, error) {
	if _, err := se.Config.GetConfig(ctx, companyID); err != nil {
		return nil, err
	}
	return se.Appointments.ListByCompanyAndDate(ctx, companyID, date, status)
}

func (se *DefaultSchedulingEngine) TransitionStatus(ctx context.Context, companyID, appointmentID, status string) (*models.Appointment, error) {
	appt, err := se.Appointments.GetByID(ctx, companyID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionTo(appt.Status, status) {
		return nil, NewValidationError(map[string]string{
			"status": "cannot transition from " + appt.Status + " to " + status,
		})
	}
	return se.Appointments.UpdateStatus(ctx, companyID, appointmentID, status)
}
