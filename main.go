// File: curbe/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curbe/config"
	"curbe/cron"
	"curbe/database"
	appointmentRepo "curbe/database/repository/appointment"
	availabilityRepo "curbe/database/repository/availability"
	companyRepo "curbe/database/repository/company"
	"curbe/handlers"
	"curbe/middleware"
	"curbe/routes"
	"curbe/services/availability"
	"curbe/services/company"
	"curbe/services/notification"
	"curbe/services/scheduling"
	"curbe/services/tasks"
	"curbe/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	compRepo := companyRepo.NewMongoCompanyRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	companyService := &company.DefaultService{Repo: compRepo}
	availabilityService := &availability.DefaultService{
		Repo:      availRepo,
		Companies: compRepo,
	}
	notificationService := notification.NewMailNotificationService()
	reminderScheduler := tasks.NewScheduler()

	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		Config:       availabilityService,
		Appointments: apptRepo,
		Locker:       &scheduling.RedisSlotLocker{Client: utils.GetLockClient()},
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
		PhoneRegion:  config.AppConfig.PhoneRegion,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService, apptRepo)

	// Health monitoring.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Appointments: handlers.NewAppointmentHandler(schedulingEngine),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Companies:    handlers.NewCompanyHandler(companyService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
