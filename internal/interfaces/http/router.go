package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"

	appanalytics "github.com/jhoicas/labinventaris/internal/application/analytics"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/media"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
	"github.com/jhoicas/labinventaris/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router. Metrics y Limiter son opcionales.
type RouterDeps struct {
	Store     *inventory.Store
	Transfer  *transfer.Service
	Dashboard *appanalytics.DashboardUseCase
	Uploads   *media.UploadUseCase
	Metrics   *metrics.Metrics
	Limiter   *limiter.Limiter
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	if deps.Metrics != nil {
		api.Use(Metrics(deps.Metrics))
	}
	if deps.Limiter != nil {
		api.Use(RateLimit(deps.Limiter, deps.Log))
	}

	stateHandler := NewStateHandler(deps.Store)
	api.Get("/state", stateHandler.Snapshot)
	api.Get("/logs", stateHandler.Logs)

	// Items: las rutas fijas van antes de /:id
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.Store, deps.Transfer)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Post("/import", itemHandler.Import)
	items.Get("/import/template", itemHandler.Template)
	items.Get("/export", itemHandler.Export)
	items.Get("/:id", itemHandler.GetByID)
	items.Patch("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/damage", itemHandler.ReportDamage)
	items.Post("/:id/maintenance/complete", itemHandler.CompleteMaintenance)

	loans := api.Group("/loans")
	loanHandler := NewLoanHandler(deps.Store, deps.Transfer)
	loans.Get("/", loanHandler.List)
	loans.Post("/", loanHandler.Borrow)
	loans.Get("/export", loanHandler.Export)
	loans.Post("/:id/return", loanHandler.Return)
	loans.Delete("/:id", loanHandler.Delete)

	labs := api.Group("/labs")
	labHandler := NewLabHandler(deps.Store)
	labs.Get("/", labHandler.List)
	labs.Get("/:id", labHandler.GetByID)
	labs.Patch("/:id", labHandler.Update)

	notifications := api.Group("/notifications")
	notifications.Get("/", stateHandler.Notifications)
	notifications.Delete("/", stateHandler.ClearNotifications)
	notifications.Post("/:id/read", stateHandler.MarkNotificationRead)

	api.Get("/profile", stateHandler.Profile)
	api.Patch("/profile", stateHandler.UpdateProfile)

	if deps.Dashboard != nil {
		dashboardHandler := NewDashboardHandler(deps.Dashboard)
		api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	}

	if deps.Uploads != nil {
		uploadHandler := NewUploadHandler(deps.Uploads)
		api.Post("/uploads", uploadHandler.Upload)
	}
}
