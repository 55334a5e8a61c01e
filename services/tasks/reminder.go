package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"curbe/config"
	"curbe/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderPayload identifies the appointment a reminder fires for. The
// worker re-reads the appointment before sending, so a cancellation after
// enqueue turns the task into a no-op.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	CompanyID     string `json:"companyId"`
}

// NewReminderTask builds an asynq task scheduled to fire at the given time.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues reminder tasks on the Redis-backed queue.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler builds a Scheduler from the app configuration.
func NewScheduler() *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleReminder enqueues a reminder for the appointment at fireAt.
func (s *Scheduler) ScheduleReminder(appt *models.Appointment, fireAt time.Time) error {
	task, opts, err := NewReminderTask(ReminderPayload{
		AppointmentID: appt.ID,
		CompanyID:     appt.CompanyID,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}
