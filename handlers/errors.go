package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "curbe/database/repository/appointment"
	availabilityRepo "curbe/database/repository/availability"
	companyRepo "curbe/database/repository/company"
	"curbe/services/scheduling"
	"curbe/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto HTTP responses. A
// validation failure lists every offending field; a slot conflict is
// reported distinctly so the client can re-fetch slots and prompt
// re-selection instead of showing a generic failure.
func respondServiceError(c *gin.Context, err error) {
	var verr *scheduling.ValidationError
	if errors.As(err, &verr) {
		utils.JSONFieldErrors(c, "Validation failed", verr.Fields)
		return
	}

	var conflict *scheduling.SlotConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "slot_conflict",
			"message": "The selected time slot is no longer available. " +
				"Please refresh the slot list and choose another time.",
		})
		return
	}

	switch {
	case errors.Is(err, companyRepo.ErrCompanyNotFound),
		errors.Is(err, availabilityRepo.ErrConfigNotFound),
		errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
