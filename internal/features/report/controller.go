package report

import (
	"voicelens/internal/features/catalog"
	"voicelens/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{
		ReportService: reportService,
	}
}

// RenderDashboard godoc
// @Summary Render the insight dashboard
// @Description Walk the report catalog for the viewer's company and return per-report blocks
// @Tags reports
// @Produce json
// @Param company_id query string false "Company ID (super admin only)"
// @Success 200 {object} DashboardView
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/dashboard [get]
func (ctrl *ReportController) RenderDashboard(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	viewer := Viewer{
		ID:        claims.UserID,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
	}

	// Managers always render their own company; super admins may switch
	companyID := claims.CompanyID
	if viewer.IsSuperAdmin() {
		if override := ctx.Query("company_id"); override != "" {
			companyID = override
		}
	}

	view, err := ctrl.ReportService.RenderDashboard(ctx.UserContext(), companyID, viewer)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(view)
}

// GetCatalog godoc
// @Summary List the report catalog
// @Description Static report definitions in display order
// @Tags reports
// @Produce json
// @Success 200 {array} catalog.Definition
// @Router /api/reports/catalog [get]
func (ctrl *ReportController) GetCatalog(ctx *fiber.Ctx) error {
	return ctx.JSON(catalog.Definitions())
}
