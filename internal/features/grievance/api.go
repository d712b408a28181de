package grievance

import (
	"voicelens/internal/config"
	"voicelens/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type GrievanceApi struct {
	controller *GrievanceController
	config     *config.Config
}

func NewGrievanceApi(controller *GrievanceController, config *config.Config) *GrievanceApi {
	return &GrievanceApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers grievance routes
func (h *GrievanceApi) Setup(app *fiber.App) {
	group := app.Group("/api/grievances", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.Submit)
	group.Get("/export", middleware.RequireRole("manager", "super_admin"), h.controller.Export)
}
