// Package ashttp wires the Authorization Server's fiber routes: RFC 8414
// metadata, RFC 7591 dynamic client registration, the authorize and token
// endpoints, and RFC 7662 introspection.
package ashttp

import (
	"github.com/abraxas-iag/gateway/pkg/asinfra"
	"github.com/abraxas-iag/gateway/pkg/asrv"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Cfg     config.AuthServerConfig
	Codes   asinfra.CodeStore
	Clients *asinfra.BoltClientStore
	Tokens  *asrv.TokenService
}

func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Get("/.well-known/oauth-authorization-server", h.Metadata)
	app.Post("/register", h.Register)
	app.Get("/authorize", h.Authorize)
	app.Post("/token", h.Token)
	app.Post("/introspect", h.Introspect)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "iag-authserver"})
}
