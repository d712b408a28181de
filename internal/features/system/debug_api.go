package system

import (
	"voicelens/internal/config"
	"voicelens/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DebugApi struct {
	controller *DebugController
	config     *config.Config
}

func NewDebugApi(controller *DebugController, config *config.Config) *DebugApi {
	return &DebugApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers debug routes. They never exist in production builds.
func (h *DebugApi) Setup(app *fiber.App) {
	if h.config.IsProduction() {
		return
	}

	group := app.Group("/api/debug", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Post("/force-subscription", middleware.RequireRole("manager", "super_admin"), h.controller.ForceSubscription)
	group.Get("/me", h.controller.GetCurrentUser)
}
