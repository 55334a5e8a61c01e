package routes

import (
	"net/http"
	"time"

	"curbe/handlers"
	"curbe/middleware"
	"curbe/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterLandingRoutes registers the public booking flow consumed by the
// landing-page widget: slot listing and appointment creation.
func RegisterLandingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/landing/appointments")
	{
		api.GET("/slots", hb.Appointments.GetSlotsHandler)
		api.POST("", hb.Appointments.BookAppointmentHandler)
	}
}

// RegisterCompanyRoutes registers the tenant registry and the protected
// company-admin surface (availability configuration, staff appointment views).
func RegisterCompanyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/companies")
	{
		api.POST("", hb.Companies.RegisterCompanyHandler)

		// Protected routes (require a company-scoped token)
		admin := api.Group("/:id")
		admin.Use(middleware.CompanyAuthMiddleware())
		admin.GET("", hb.Companies.GetCompanyHandler)
		admin.GET("/appointment-availability", hb.Availability.GetConfigHandler)
		admin.PUT("/appointment-availability", hb.Availability.UpdateConfigHandler)
		admin.GET("/appointments", hb.Appointments.ListAppointmentsHandler)
		admin.PATCH("/appointments/:appointmentId/status", hb.Appointments.UpdateAppointmentStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterLandingRoutes(r, hb)
	RegisterCompanyRoutes(r, hb)
	RegisterHealthRoute(r)
}
