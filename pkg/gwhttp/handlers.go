// Package gwhttp wires the gateway's fiber routes to the session state
// machine in pkg/gwcore and the infrastructure adapters in pkg/gwinfra.
package gwhttp

import (
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
	"github.com/gofiber/fiber/v2"
)

// Handlers holds every dependency the gateway's HTTP surface needs.
type Handlers struct {
	Cfg        config.GatewayConfig
	Sessions   *gwinfra.SessionStore
	Discovery  *gwinfra.DiscoveryClient
	ADP        *gwinfra.ADPClient
	Registrar  *gwinfra.ClientRegistrar
	Proxy      *gwinfra.ToolProxy
}

// RegisterRoutes mounts the gateway's authoritative HTTP surface.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Health)

	app.Post("/session/start", h.StartSession)
	app.Get("/session/status", h.SessionStatus)
	app.Get("/oauth/callback", h.Callback)
	app.Get("/consent", h.Consent)
	app.Post("/consent/approve", h.ConsentApprove)

	app.Get("/mcp/echo", h.ToolCall("/mcp/echo"))
	app.Get("/mcp/tickets", h.ToolCall("/mcp/tickets"))
	app.Post("/mcp/pay", h.ToolCall("/mcp/pay"))

	if h.Cfg.DebugEnabled {
		app.Post("/debug/session/reset", h.DebugReset)
		app.Get("/debug/token", h.DebugToken)
		app.Get("/debug/introspect", h.DebugIntrospect)
	}
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "iag-gateway"})
}
