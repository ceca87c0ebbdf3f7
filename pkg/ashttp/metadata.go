package ashttp

import "github.com/gofiber/fiber/v2"

// Metadata publishes RFC 8414 authorization server metadata.
func (h *Handlers) Metadata(c *fiber.Ctx) error {
	issuer := h.Cfg.Issuer
	return c.JSON(fiber.Map{
		"issuer":                                issuer,
		"authorization_endpoint":                issuer + "/authorize",
		"token_endpoint":                         issuer + "/token",
		"introspection_endpoint":                 issuer + "/introspect",
		"registration_endpoint":                  issuer + "/register",
		"code_challenge_methods_supported":       []string{"S256"},
		"scopes_supported":                       []string{"echo:read", "tickets:read", "payments:charge"},
		"token_endpoint_auth_methods_supported":  []string{"none"},
		"response_types_supported":               []string{"code"},
		"grant_types_supported":                  []string{"authorization_code"},
	})
}
