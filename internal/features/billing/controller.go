package billing

import (
	"github.com/gofiber/fiber/v2"
)

type BillingController struct {
	BillingService BillingService
}

func NewBillingController(billingService BillingService) *BillingController {
	return &BillingController{
		BillingService: billingService,
	}
}

// HandlePayPalWebhook godoc
// @Summary PayPal webhook
// @Description Apply completed payments and subscription lifecycle events to entitlements
// @Tags billing
// @Accept json
// @Produce json
// @Param event body WebhookEvent true "Webhook event"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/webhooks/paypal [post]
func (ctrl *BillingController) HandlePayPalWebhook(ctx *fiber.Ctx) error {
	var event WebhookEvent
	if err := ctx.BodyParser(&event); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.BillingService.ProcessWebhookEvent(ctx.UserContext(), &event); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"received": true})
}
