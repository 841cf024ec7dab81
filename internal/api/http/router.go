package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/govhub/helpdesk-portal/internal/api/http/handlers"
	"github.com/govhub/helpdesk-portal/internal/auth"
	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/observability"
	"github.com/govhub/helpdesk-portal/internal/web"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Dashboard     *handlers.DashboardHandler
	Departments   *handlers.DepartmentsHandler
	Staff         *handlers.StaffHandler
	Tickets       *handlers.TicketsHandler
	Messages      *handlers.MessagesHandler
	Announcements *handlers.AnnouncementsHandler
	Metrics       *observability.Metrics
	RateLimit     config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes. Fixed segments such as /new and /export
// are registered before /:id.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", LoginRateLimiter(cfg.RateLimit), cfg.Auth.Login)

	app.Use(auth.RequireSession())
	app.Post("/logout", cfg.Auth.Logout)

	app.Get("/", cfg.Dashboard.Index)
	app.Get("/dashboard/leaderboard", cfg.Dashboard.Leaderboard)
	app.Get("/dashboard/solved-count", cfg.Dashboard.SolvedCount)
	app.Post("/announcements", cfg.Announcements.Post)
	app.Post("/announcements/:id/delete", cfg.Announcements.Delete)

	departments := app.Group("/departments", auth.RequireManager())
	departments.Get("/", cfg.Departments.List)
	departments.Get("/export.pdf", cfg.Departments.ExportPDF)
	departments.Get("/export.xlsx", cfg.Departments.ExportXLSX)
	departments.Get("/new", cfg.Departments.New)
	departments.Post("/", cfg.Departments.Create)
	departments.Post("/:id/reasons", cfg.Departments.Reasons)
	departments.Get("/:id", cfg.Departments.Show)
	departments.Get("/:id/pdf", cfg.Departments.PDF)
	departments.Get("/:id/edit", cfg.Departments.Edit)
	departments.Post("/:id", cfg.Departments.Update)
	departments.Get("/:id/delete", cfg.Departments.ConfirmDelete)
	departments.Post("/:id/delete", cfg.Departments.Delete)

	staff := app.Group("/staff", auth.RequireManager())
	staff.Get("/", cfg.Staff.List)
	staff.Get("/export.pdf", cfg.Staff.ExportPDF)
	staff.Get("/export.xlsx", cfg.Staff.ExportXLSX)
	staff.Get("/new", cfg.Staff.New)
	staff.Post("/", cfg.Staff.Create)
	staff.Get("/:id", cfg.Staff.Show)
	staff.Get("/:id/pdf", cfg.Staff.PDF)
	staff.Get("/:id/edit", cfg.Staff.Edit)
	staff.Post("/:id", cfg.Staff.Update)
	staff.Get("/:id/delete", cfg.Staff.ConfirmDelete)
	staff.Post("/:id/delete", cfg.Staff.Delete)

	tickets := app.Group("/tickets")
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/export.pdf", cfg.Tickets.ExportPDF)
	tickets.Get("/export.xlsx", cfg.Tickets.ExportXLSX)
	tickets.Get("/new", cfg.Tickets.New)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Show)
	tickets.Get("/:id/pdf", cfg.Tickets.PDF)
	tickets.Get("/:id/edit", cfg.Tickets.Edit)
	tickets.Post("/:id", cfg.Tickets.Update)
	tickets.Get("/:id/solve", cfg.Tickets.SolveForm)
	tickets.Post("/:id/solve", cfg.Tickets.Solve)
	tickets.Get("/:id/reject", cfg.Tickets.RejectForm)
	tickets.Post("/:id/reject", cfg.Tickets.Reject)
	tickets.Post("/:id/quick-reject", cfg.Tickets.QuickReject)
	tickets.Get("/:id/delete", cfg.Tickets.ConfirmDelete)
	tickets.Post("/:id/delete", cfg.Tickets.Delete)

	app.Get("/messages", cfg.Messages.Index)
	app.Post("/messages", cfg.Messages.Send)
	app.Get("/messages/recent", cfg.Messages.Recent)
}
