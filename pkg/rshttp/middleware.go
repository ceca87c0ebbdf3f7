// Package rshttp implements the demo Resource Server's protected-resource
// metadata endpoint, bearer-token enforcement middleware, and the three
// demo tool handlers (echo, tickets, pay) the gateway proxies to.
package rshttp

import (
	"fmt"

	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/rs"
	"github.com/gofiber/fiber/v2"
)

const tokenInfoLocalsKey = "rs_token_info"

// RequireToken builds fiber middleware enforcing bearer presence, token
// validity (via introspection or local verification), audience match, and
// the scope required for the wrapped route. An unauthenticated or invalid
// request gets a 401 carrying a WWW-Authenticate challenge that points
// back at this resource server's protected-resource metadata, the probe
// the gateway's discovery step depends on.
func RequireToken(cfg config.ResourceServerConfig, verifier rs.TokenVerifier, requiredScope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		const prefix = "Bearer "
		if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
			return challenge(c, cfg, "invalid_token", "missing bearer token")
		}
		token := auth[len(prefix):]

		info, err := verifier.Verify(c.Context(), token)
		if err != nil {
			return challenge(c, cfg, "invalid_token", err.Error())
		}
		if !info.Active {
			return challenge(c, cfg, "invalid_token", "token is not active")
		}
		if info.Audience != cfg.ExpectedAud {
			return challenge(c, cfg, "invalid_token", "audience mismatch")
		}
		if requiredScope != "" && !info.HasScope(requiredScope) {
			return rs.ErrInsufficientScope(requiredScope)
		}

		c.Locals(tokenInfoLocalsKey, info)
		return c.Next()
	}
}

func challenge(c *fiber.Ctx, cfg config.ResourceServerConfig, errCode, desc string) error {
	prmURL := cfg.Resource + "/.well-known/oauth-protected-resource"
	c.Set("WWW-Authenticate", fmt.Sprintf(
		`Bearer realm="%s", error="%s", error_description="%s", resource_metadata="%s"`,
		cfg.ExpectedAud, errCode, desc, prmURL,
	))
	return rs.ErrInvalidToken(desc)
}

func tokenInfo(c *fiber.Ctx) rs.TokenInfo {
	info, _ := c.Locals(tokenInfoLocalsKey).(rs.TokenInfo)
	return info
}
