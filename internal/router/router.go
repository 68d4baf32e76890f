package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dhia-elwidad/spmb-api/internal/handler"
	"github.com/dhia-elwidad/spmb-api/internal/middleware"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/observability"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health       *handler.HealthHandler
	Registration *handler.RegistrationHandler
	Auth         *handler.AuthHandler
	Student      *handler.AdminStudentHandler
	Account      *handler.AccountHandler
	Settings     *handler.SettingsHandler
	Dashboard    *handler.DashboardHandler
}

// Register mounts all routes onto the app.
func Register(app *fiber.App, h Handlers, jwtSecret string) {
	app.Get("/health", h.Health.Check)
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1")
	api.Get("/health", h.Health.Check)

	// Public landing-page endpoints.
	registrations := api.Group("/registrations")
	registrations.Post("/whatsapp", h.Registration.CreateWhatsAppLink)
	registrations.Get("/contact", h.Registration.ContactLink)
	registrations.Get("/documents", h.Registration.RequiredDocuments)
	api.Get("/levels", h.Registration.Levels)

	api.Post("/auth/login", h.Auth.Login)

	// Admin panel endpoints. Every route requires a valid bearer token; the
	// account-management and settings groups additionally require the
	// super-admin role.
	admin := api.Group("/admin", middleware.JWTProtected(jwtSecret))
	anyAdmin := middleware.RequireRole(models.RoleSuperAdmin, models.RoleLevelAdmin)
	superOnly := middleware.RequireRole(models.RoleSuperAdmin)

	students := admin.Group("/students", anyAdmin)
	students.Post("/", h.Student.Create)
	students.Get("/", h.Student.List)
	students.Post("/import", superOnly, h.Student.Import)
	students.Get("/:id", h.Student.Get)
	students.Patch("/:id/status", h.Student.SetStatus)
	students.Post("/:id/documents", h.Student.AttachDocument)

	dashboard := admin.Group("/dashboard", anyAdmin)
	dashboard.Get("/stats", h.Dashboard.Stats)
	dashboard.Get("/summary", h.Dashboard.Summary)

	accounts := admin.Group("/accounts", superOnly)
	accounts.Post("/", h.Account.Create)
	accounts.Get("/", h.Account.List)
	accounts.Delete("/:id", h.Account.Delete)

	settings := admin.Group("/settings", superOnly)
	settings.Get("/", h.Settings.Get)
	settings.Put("/", h.Settings.Update)
}
