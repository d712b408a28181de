package grievance

import (
	"errors"
	"fmt"

	"voicelens/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type GrievanceController struct {
	GrievanceService GrievanceService
}

func NewGrievanceController(grievanceService GrievanceService) *GrievanceController {
	return &GrievanceController{
		GrievanceService: grievanceService,
	}
}

// Submit godoc
// @Summary Submit a grievance
// @Description Submit an employee grievance and earn submission points
// @Tags grievances
// @Accept json
// @Produce json
// @Param grievance body SubmitRequest true "Grievance"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /api/grievances [post]
func (ctrl *GrievanceController) Submit(ctx *fiber.Ctx) error {
	var req SubmitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	g, points, err := ctrl.GrievanceService.Submit(ctx.UserContext(), claims.UserID, claims.CompanyID, &req)
	if err != nil {
		if errors.Is(err, ErrTooManySubmissions) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"grievance":     g,
		"points_earned": points,
	})
}

// Export godoc
// @Summary Export grievances
// @Description Download the company's grievances as an Excel workbook
// @Tags grievances
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param company_id query string false "Company ID (super admin only)"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/grievances/export [get]
func (ctrl *GrievanceController) Export(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	companyID := claims.CompanyID
	if claims.Role == "super_admin" {
		if override := ctx.Query("company_id"); override != "" {
			companyID = override
		}
	}

	data, filename, err := ctrl.GrievanceService.ExportToExcel(ctx.UserContext(), companyID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(data)
}
