package handlers

import (
	"net/http"

	"curbe/models"
	"curbe/services/availability"
	"curbe/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the availability configuration panel's backend.
type AvailabilityHandler struct {
	Availability availability.Service
}

func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc}
}

// GetConfigHandler returns the company's effective availability configuration.
func (h *AvailabilityHandler) GetConfigHandler(c *gin.Context) {
	cfg, err := h.Availability.GetConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfigHandler applies a full or partial configuration update.
// Invalid updates are rejected wholesale with every offending field listed.
func (h *AvailabilityHandler) UpdateConfigHandler(c *gin.Context) {
	var update models.AvailabilityConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	cfg, err := h.Availability.UpdateConfig(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
