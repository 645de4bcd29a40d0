package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civic-kit/complaint-service/internal/api/http/handlers"
	"github.com/civic-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	userGroup := app.Group("/user")
	userGroup.Post("/register", cfg.Users.Register)
	userGroup.Post("/login", cfg.Users.Login)

	citizen := userGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireCitizen())
	citizen.Post("/complaint", cfg.Complaints.Create)
	citizen.Get("/complaints/all", cfg.Complaints.ListAll)
	citizen.Get("/complaints/active", cfg.Complaints.ListActive)
	citizen.Put("/complaint/:ticket_no/mark-solved", cfg.Complaints.MarkSolved)

	adminGroup := app.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)

	staff := adminGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	staff.Get("/active-complaints", cfg.Admin.ActiveComplaints)
	staff.Get("/complaint-history", cfg.Admin.ResolutionQueue)
	staff.Put("/complaint/:ticket_no/status", cfg.Admin.UpdateStatus)
	staff.Get("/complaint/:ticket_no/history", cfg.Admin.History)

	superadmin := adminGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireSuperadmin())
	superadmin.Post("/register-subadmin", cfg.Admin.RegisterSubadmin)
}
