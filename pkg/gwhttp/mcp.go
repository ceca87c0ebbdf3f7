package gwhttp

import (
	"strconv"
	"strings"
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
	"github.com/gofiber/fiber/v2"
)

// ToolCall returns a fiber.Handler bound to one gateway tool path. It
// selects a ready session by the path's required scope, enforces
// obligations in order, and forwards to the upstream resource server.
func (h *Handlers) ToolCall(path string) fiber.Handler {
	requiredScope := gwcore.ToolScope[path]
	upstreamPath := gwcore.ToolUpstreamPath[path]

	return func(c *fiber.Ctx) error {
		session, ok := h.Sessions.SelectForScope(requiredScope)
		if !ok {
			return gwcore.ErrLoginRequired()
		}

		toolReq := gwcore.ToolRequest{
			OrderID:     c.Query("orderId"),
			MerchantID:  c.Query("merchant_id"),
		}
		var body map[string]any
		if c.Method() == fiber.MethodPost {
			_ = c.BodyParser(&body)
			if v, ok := body["orderId"].(string); ok {
				toolReq.OrderID = v
			}
			if v, ok := body["merchant_id"].(string); ok {
				toolReq.MerchantID = v
			}
			if v, ok := body["amount_cents"].(float64); ok {
				toolReq.AmountCents = int64(v)
			}
		}
		if v := c.Query("amount_cents"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				toolReq.AmountCents = n
			}
		}

		if violation := gwcore.CheckObligations(session.Obligations, session.ObligationsIssued, toolReq, time.Now()); violation != nil {
			if violation.Code == gwcore.CodeTTLExpired.Code {
				h.Sessions.Mutate(session.SID, func(s *gwcore.Session) { s.ClearToken() })
			}
			return violation
		}

		resolvedPath := strings.Replace(upstreamPath, "{orderId}", toolReq.OrderID, 1)

		walletToken := ""
		if path == "/mcp/pay" {
			walletToken = h.Cfg.WalletPMToken
		}

		resp, err := h.Proxy.Forward(c.Context(), gwinfra.ProxyRequest{
			Method:      c.Method(),
			Upstream:    session.Upstream,
			Path:        resolvedPath,
			Query:       stripHandledQuery(c),
			Body:        body,
			AccessToken: session.AccessToken,
			WalletToken: walletToken,
		})
		if err != nil {
			return gwcore.ErrBadGateway(err.Error())
		}

		if resp.StatusCode == fiber.StatusUnauthorized || resp.StatusCode == fiber.StatusForbidden {
			h.Sessions.Mutate(session.SID, func(s *gwcore.Session) { s.ClearToken() })
			return gwcore.ErrLoginRequired()
		}

		c.Status(resp.StatusCode)
		if resp.ContentType != "" {
			c.Set(fiber.HeaderContentType, resp.ContentType)
		}
		return c.Send(resp.Body)
	}
}

func stripHandledQuery(c *fiber.Ctx) string {
	return string(c.Request().URI().QueryString())
}
