package report

import (
	"voicelens/internal/config"
	"voicelens/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	controller *ReportController
	config     *config.Config
}

func NewReportApi(controller *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the dashboard/report routes
func (h *ReportApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)
	managers := middleware.RequireRole("manager", "super_admin")

	app.Get("/api/dashboard", auth, managers, h.controller.RenderDashboard)
	app.Get("/api/reports/catalog", auth, managers, h.controller.GetCatalog)
}
