package system

import (
	"voicelens/internal/features/audit"
	"voicelens/internal/features/entitlement"
	"voicelens/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DebugProviderSubscriptionID marks subscriptions created through the
// debug override so they are distinguishable from real PayPal ones.
const DebugProviderSubscriptionID = "DEBUG_SUB_123"

type DebugController struct {
	EntitlementRepo entitlement.EntitlementRepository
	AuditService    audit.AuditService
	Logger          *zap.Logger
}

func NewDebugController(entitlementRepo entitlement.EntitlementRepository, auditService audit.AuditService, logger *zap.Logger) *DebugController {
	return &DebugController{
		EntitlementRepo: entitlementRepo,
		AuditService:    auditService,
		Logger:          logger,
	}
}

// ForceSubscription godoc
// @Summary Force an active subscription (development only)
// @Description Activates a subscription for the caller's company without a payment
// @Tags debug
// @Produce json
// @Param company_id query string false "Company override (super_admin only)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/debug/force-subscription [post]
func (ctrl *DebugController) ForceSubscription(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	companyID := claims.CompanyID
	if claims.Role == "super_admin" {
		if override := ctx.Query("company_id"); override != "" {
			companyID = override
		}
	}

	if err := ctrl.EntitlementRepo.UpsertActiveSubscription(ctx.UserContext(), companyID, DebugProviderSubscriptionID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctrl.Logger.Warn("debug subscription override applied",
		zap.String("company_id", companyID), zap.String("viewer_id", claims.UserID))
	ctrl.AuditService.LogChange(ctx.UserContext(), audit.ActionDebugOverride, companyID, claims.UserID,
		map[string]interface{}{"provider_subscription_id": DebugProviderSubscriptionID})

	return ctx.JSON(fiber.Map{
		"message":    "subscription forced active",
		"company_id": companyID,
	})
}

// GetCurrentUser godoc
// @Summary Current token claims (development only)
// @Tags debug
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/debug/me [get]
func (ctrl *DebugController) GetCurrentUser(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return ctx.JSON(fiber.Map{
		"user_id":    claims.UserID,
		"company_id": claims.CompanyID,
		"role":       claims.Role,
	})
}
