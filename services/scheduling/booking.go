package scheduling

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	appointmentRepo "curbe/database/repository/appointment"
	"curbe/models"
	"curbe/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Book validates the request, serializes on (companyID, date), re-checks the
// slot against fresh state and commits the appointment in pending status.
// Every rejection leaves state unchanged.
func (se *DefaultSchedulingEngine) Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	cfg, err := se.Config.GetConfig(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	now := se.now()
	phone, verr := se.validateBooking(&req, cfg, now)
	if verr != nil {
		return nil, verr
	}

	release, err := se.Locker.Acquire(ctx, req.CompanyID, req.AppointmentDate)
	if err != nil {
		return nil, &SlotConflictError{CompanyID: req.CompanyID, Date: req.AppointmentDate, Time: req.AppointmentTime}
	}
	defer release()

	existing, err := se.Appointments.ActiveByCompanyAndDate(ctx, req.CompanyID, req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	available, err := SlotIsAvailable(cfg, req.AppointmentDate, req.AppointmentTime, existing, now)
	if err != nil {
		return nil, NewValidationError(map[string]string{"appointmentDate": err.Error()})
	}
	if !available {
		return nil, &SlotConflictError{CompanyID: req.CompanyID, Date: req.AppointmentDate, Time: req.AppointmentTime}
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		CompanyID:       req.CompanyID,
		Date:            req.AppointmentDate,
		Time:            req.AppointmentTime,
		DurationMinutes: cfg.DurationMinutes,
		Status:          models.StatusPending,
		FullName:        strings.TrimSpace(req.FullName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           phone,
		Notes:           strings.TrimSpace(req.Notes),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	if err := se.Appointments.InsertIfSlotFree(ctx, appt, cfg.BufferMinutes); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, &SlotConflictError{CompanyID: req.CompanyID, Date: req.AppointmentDate, Time: req.AppointmentTime}
		}
		return nil, err
	}

	se.afterBooking(ctx, appt, cfg)
	return appt, nil
}

// validateBooking checks contact fields and the advance window, collecting
// every offending field. Returns the normalized phone on success.
func (se *DefaultSchedulingEngine) validateBooking(req *models.BookingRequest, cfg *models.AvailabilityConfig, now time.Time) (string, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(req.FullName) == "" {
		fields["fullName"] = "is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		fields["email"] = "is not a valid email address"
	}

	phone, err := utils.NormalizePhone(req.Phone, se.PhoneRegion)
	if err != nil {
		fields["phone"] = "is not a valid phone number"
	}

	if _, err := models.ClockToMinutes(req.AppointmentTime); err != nil {
		fields["appointmentTime"] = "must be a valid HH:MM time"
	}

	loc, locErr := time.LoadLocation(cfg.Timezone)
	if locErr != nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", req.AppointmentDate, loc)
	if err != nil {
		fields["appointmentDate"] = "must be a valid YYYY-MM-DD date"
	} else {
		localNow := now.In(loc)
		today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
		if day.Before(today) {
			fields["appointmentDate"] = "is in the past"
		} else if day.After(today.AddDate(0, 0, cfg.MaxAdvanceDays)) {
			fields["appointmentDate"] = "is beyond the booking window"
		}
	}

	if len(fields) > 0 {
		return "", NewValidationError(fields)
	}
	return phone, nil
}

// afterBooking fires the confirmation email and schedules the reminder.
// Both are best-effort; a failure is logged, never surfaced to the caller.
func (se *DefaultSchedulingEngine) afterBooking(ctx context.Context, appt *models.Appointment, cfg *models.AvailabilityConfig) {
	logger := utils.GetLogger()

	if se.Notifier != nil {
		if err := se.Notifier.SendBookingConfirmation(ctx, appt); err != nil {
			logger.Warn("failed to send booking confirmation",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	if se.Reminders != nil {
		if fireAt, ok := se.reminderTime(appt, cfg); ok {
			if err := se.Reminders.ScheduleReminder(appt, fireAt); err != nil {
				logger.Warn("failed to schedule reminder",
					zap.String("appointmentID", appt.ID), zap.Error(err))
			}
		}
	}
}

// reminderTime computes when the reminder should fire, in the company zone.
// Appointments starting inside the lead window get no reminder.
func (se *DefaultSchedulingEngine) reminderTime(appt *models.Appointment, cfg *models.AvailabilityConfig) (time.Time, bool) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.Time{}, false
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	fireAt := start.Add(-se.ReminderLead)
	if !fireAt.After(se.now()) {
		return time.Time{}, false
	}
	return fireAt, true
}
