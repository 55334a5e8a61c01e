package handlers

import (
	"net/http"
	"strconv"

	"curbe/models"
	"curbe/services/scheduling"
	"curbe/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the public booking flow and the staff
// appointment views.
type AppointmentHandler struct {
	Scheduler scheduling.SchedulingService
}

func NewAppointmentHandler(scheduler scheduling.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{Scheduler: scheduler}
}

// GetSlotsHandler returns the annotated slot list for one company date.
// Unavailable slots are included; filtering is the client's choice.
func (h *AppointmentHandler) GetSlotsHandler(c *gin.Context) {
	companyID := c.Query("companyId")
	date := c.Query("date")
	if companyID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "companyId and date query parameters are required")
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "duration must be an integer number of minutes")
			return
		}
		duration = parsed
	}

	slots, err := h.Scheduler.GetSlots(c.Request.Context(), companyID, date, duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BookAppointmentHandler commits a booking request, or rejects it with a
// field-level validation error or a slot conflict.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	appt, err := h.Scheduler.Book(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListAppointmentsHandler is the staff list view for a company, optionally
// filtered by date and status.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	companyID := c.Param("id")
	appts, err := h.Scheduler.ListAppointments(c.Request.Context(), companyID, c.Query("date"), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// UpdateAppointmentStatusHandler applies a staff status transition.
func (h *AppointmentHandler) UpdateAppointmentStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	appt, err := h.Scheduler.TransitionStatus(c.Request.Context(), c.Param("id"), c.Param("appointmentId"), input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
