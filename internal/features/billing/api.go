package billing

import (
	"github.com/gofiber/fiber/v2"
)

type BillingApi struct {
	controller *BillingController
}

func NewBillingApi(controller *BillingController) *BillingApi {
	return &BillingApi{
		controller: controller,
	}
}

// Setup registers billing routes. The webhook is unauthenticated: it is
// called by the payment provider, not by a logged-in user.
func (h *BillingApi) Setup(app *fiber.App) {
	app.Post("/api/webhooks/paypal", h.controller.HandlePayPalWebhook)
}
