package handlers

import (
	"net/http"

	"curbe/models"
	"curbe/services/company"
	"curbe/utils"

	"github.com/gin-gonic/gin"
)

// CompanyHandler exposes the tenant registry.
type CompanyHandler struct {
	Companies company.Service
}

func NewCompanyHandler(svc company.Service) *CompanyHandler {
	return &CompanyHandler{Companies: svc}
}

// RegisterCompanyHandler creates a new tenant.
func (h *CompanyHandler) RegisterCompanyHandler(c *gin.Context) {
	var reg models.CompanyRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.Companies.Register(c.Request.Context(), reg)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetCompanyHandler returns one company record.
func (h *CompanyHandler) GetCompanyHandler(c *gin.Context) {
	found, err := h.Companies.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}
