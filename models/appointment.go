package models

import "time"

// Appointment statuses. A cancelled appointment releases its interval back
// to availability immediately; the other states keep it booked.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is a booked time slot for a company.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	CompanyID       string    `bson:"companyId" json:"companyId"`
	Date            string    `bson:"date" json:"date"` // "YYYY-MM-DD" in the company timezone
	Time            string    `bson:"time" json:"time"` // "HH:MM" start, company timezone
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"` // frozen at creation
	Status          string    `bson:"status" json:"status"`
	FullName        string    `bson:"fullName" json:"fullName"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone" json:"phone"` // digits only, normalized
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the appointment still occupies its interval.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// CanTransitionTo reports whether a staff status change is legal.
func CanTransitionTo(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// BookingRequest is the payload submitted from the public booking flow.
type BookingRequest struct {
	CompanyID       string `json:"companyId" binding:"required"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Notes           string `json:"notes,omitempty"`
}
