package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"hrportal/config"
	"hrportal/database"
	"hrportal/events"
	"hrportal/handlers"
	"hrportal/middleware"
	"hrportal/models"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	recorder := events.NewDBRecorder(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	timesheetHandler := handlers.NewTimesheetHandler(cfg, recorder)
	approvalHandler := handlers.NewApprovalHandler(cfg, recorder)
	leaveHandler := handlers.NewLeaveHandler(cfg)
	projectHandler := handlers.NewProjectHandler()
	exportHandler := handlers.NewExportHandler(cfg)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/login", authHandler.Login)
	router.Post("/api/register", authHandler.Register)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Post("/api/logout", authHandler.Logout)
		r.Get("/api/session", authHandler.Session)

		// Timesheets (all authenticated users)
		r.Get("/api/timesheets/week", timesheetHandler.Week)
		r.Put("/api/timesheets/week/{start}/days/{weekday}", timesheetHandler.SaveDay)
		r.Post("/api/timesheets", timesheetHandler.SaveWeek)
		r.Post("/api/timesheets/{id}/submit", timesheetHandler.Submit)
		r.Get("/api/timesheets/history", timesheetHandler.History)

		// Leave
		r.Post("/api/leave", leaveHandler.Create)
		r.Get("/api/leave", leaveHandler.List)

		// Project catalog
		r.Get("/api/projects", projectHandler.List)
		r.Get("/api/projects/resolve", projectHandler.Resolve)

		// Manager, HR and admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleManager, models.RoleHR, models.RoleAdmin))
			r.Get("/api/approvals/timesheets", approvalHandler.PendingTimesheets)
			r.Post("/api/approvals/timesheets/{id}", approvalHandler.ActOnTimesheet)
			r.Get("/api/approvals/leave", approvalHandler.PendingLeave)
			r.Post("/api/approvals/leave/{id}", approvalHandler.ActOnLeave)
		})

		// HR and admin only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleHR, models.RoleAdmin))
			r.Get("/api/export/csv", exportHandler.ExportCSV)
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
