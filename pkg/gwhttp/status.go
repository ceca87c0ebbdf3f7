package gwhttp

import (
	"github.com/abraxas-iag/gateway/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// SessionStatus reports readiness. It never returns the access token; the
// agent only ever learns whether a session is ready to serve tool calls.
func (h *Handlers) SessionStatus(c *fiber.Ctx) error {
	scope := c.Query("scope")

	if sid := c.Query("sid"); sid != "" {
		sess, ok := h.Sessions.Get(kernel.NewSessionID(sid))
		if !ok {
			return c.JSON(fiber.Map{"ready": false})
		}
		return c.JSON(fiber.Map{"ready": sess.Ready()})
	}

	if scope != "" {
		_, ok := h.Sessions.SelectForScope(scope)
		return c.JSON(fiber.Map{"ready": ok})
	}

	return c.JSON(fiber.Map{"ready": false})
}
