// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"log"

	"curbe/database"
	"curbe/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepository interface {
	GetByID(ctx context.Context, companyID, appointmentID string) (*models.Appointment, error)
	ListByCompanyAndDate(ctx context.Context, companyID, date, status string) ([]models.Appointment, error)
	ActiveByCompanyAndDate(ctx context.Context, companyID, date string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, companyID, appointmentID, status string) (*models.Appointment, error)
	// InsertIfSlotFree commits the appointment only if no active appointment's
	// buffered window overlaps it. Returns ErrSlotTaken when another booking
	// holds the interval.
	InsertIfSlotFree(ctx context.Context, appt *models.Appointment, bufferMinutes int) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
// The partial unique index on (companyId, date, time) backs the
// at-most-one-active-booking-per-slot invariant, so index creation failure
// is fatal.
func NewMongoAppointmentRepo() AppointmentRepository {
	r := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Fatalf("failed to ensure appointment indexes: %v", err)
	}
	return r
}
