package company

import (
	"voicelens/internal/config"
	"voicelens/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CompanyApi struct {
	controller *CompanyController
	config     *config.Config
}

func NewCompanyApi(controller *CompanyController, config *config.Config) *CompanyApi {
	return &CompanyApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers company routes
func (h *CompanyApi) Setup(app *fiber.App) {
	group := app.Group("/api/companies", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Get("/", middleware.RequireRole("super_admin"), h.controller.List)
}
