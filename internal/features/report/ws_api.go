package report

import (
	"voicelens/internal/config"
	"voicelens/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// RenderStreamApi exposes render progress events over a websocket so the
// dashboard can show per-report spinners while a render walks the catalog.
type RenderStreamApi struct {
	hub    *RenderHub
	config *config.Config
}

func NewRenderStreamApi(hub *RenderHub, config *config.Config) *RenderStreamApi {
	return &RenderStreamApi{
		hub:    hub,
		config: config,
	}
}

func (h *RenderStreamApi) Setup(app *fiber.App) {
	app.Get("/api/ws/renders",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole("manager", "super_admin"),
		websocket.New(h.handle))
}

func (h *RenderStreamApi) handle(c *websocket.Conn) {
	events, cancel := h.hub.Subscribe()
	defer cancel()
	defer c.Close()

	for event := range events {
		if err := c.WriteJSON(event); err != nil {
			return
		}
	}
}
