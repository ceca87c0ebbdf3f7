package gwhttp

import (
	"github.com/abraxas-iag/gateway/pkg/kernel"
	"github.com/abraxas-iag/gateway/pkg/ptrx"
	"github.com/gofiber/fiber/v2"
)

// DebugReset wipes every session. Dev-only, gated by GW_DEBUG_ENABLED.
func (h *Handlers) DebugReset(c *fiber.Ctx) error {
	h.Sessions.Reset()
	return c.JSON(fiber.Map{"status": "reset"})
}

// DebugToken exposes a session's raw access token. This is the one place
// in the gateway allowed to leak it, and it only exists when debug mode is
// explicitly enabled.
func (h *Handlers) DebugToken(c *fiber.Ctx) error {
	sid := c.Query("sid")
	sess, ok := h.Sessions.Get(kernel.NewSessionID(sid))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	return c.JSON(fiber.Map{
		"sid":           sid,
		"access_token":  sess.AccessToken,
		"refresh_token": sess.RefreshToken,
		"expires_at":    sess.ExpiresAt,
		"ready":         sess.Ready(),
	})
}

// DebugIntrospect dumps every session's shape (without tokens) for local
// inspection.
func (h *Handlers) DebugIntrospect(c *fiber.Ctx) error {
	sessions := h.Sessions.All()
	out := make([]fiber.Map, 0, len(sessions))
	for _, s := range sessions {
		// max_amount_cents is only meaningful once an obligation set it; a
		// *int64 keeps "unset" distinguishable from "capped at zero" in the
		// JSON the way the obligation itself is optional on the session.
		var maxAmount *int64
		if s.Obligations.HasMaxAmountCents {
			maxAmount = ptrx.Int64(s.Obligations.MaxAmountCents)
		}
		out = append(out, fiber.Map{
			"sid":              string(s.SID),
			"tool_id":          s.ToolID.String(),
			"requested_scopes": s.RequestedScopes,
			"ready":            s.Ready(),
			"used":             s.Used,
			"obtained_at":      s.ObtainedAt,
			"max_amount_cents": maxAmount,
		})
	}
	return c.JSON(out)
}
