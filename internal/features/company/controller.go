package company

import (
	"github.com/gofiber/fiber/v2"
)

type CompanyController struct {
	CompanyService CompanyService
}

func NewCompanyController(companyService CompanyService) *CompanyController {
	return &CompanyController{
		CompanyService: companyService,
	}
}

// List godoc
// @Summary List companies
// @Description Companies available in the super-admin switcher
// @Tags companies
// @Produce json
// @Success 200 {array} Company
// @Failure 500 {object} map[string]interface{}
// @Router /api/companies [get]
func (ctrl *CompanyController) List(ctx *fiber.Ctx) error {
	companies, err := ctrl.CompanyService.ListForSwitcher(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(companies)
}
