package rshttp

import (
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/rs"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Cfg      config.ResourceServerConfig
	Verifier rs.TokenVerifier
}

// RegisterRoutes mounts the protected-resource metadata document and the
// three demo tools, each behind RequireToken for its specific scope.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Get("/.well-known/oauth-protected-resource", h.Metadata)

	app.Get("/mcp/echo", RequireToken(h.Cfg, h.Verifier, "echo:read"), h.Echo)
	app.Get("/tickets", RequireToken(h.Cfg, h.Verifier, "tickets:read"), h.Tickets)
	app.Post("/orders/:orderId/pay", RequireToken(h.Cfg, h.Verifier, "payments:charge"), h.Pay)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "iag-resourceserver"})
}

func (h *Handlers) Metadata(c *fiber.Ctx) error {
	return c.JSON(rs.ProtectedResourceMetadata{
		Resource:              h.Cfg.ExpectedAud,
		AuthorizationServers:  []string{h.Cfg.AuthServerMeta},
		ScopesSupported:       []string{"echo:read", "tickets:read", "payments:charge"},
		IntrospectionEndpoint: h.Cfg.IntrospectURL,
	})
}
