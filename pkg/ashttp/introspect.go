package ashttp

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type introspectResponse struct {
	Active    bool   `json:"active"`
	Scope     string `json:"scope,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Audience  string `json:"aud,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	IatUnix   int64  `json:"iat,omitempty"`
	ExpUnix   int64  `json:"exp,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Introspect implements RFC 7662 for the resource server to validate
// bearer tokens minted by this AS out of band from the gateway's own flow.
func (h *Handlers) Introspect(c *fiber.Ctx) error {
	token := c.FormValue("token")
	if token == "" {
		if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return c.JSON(introspectResponse{Active: false, Error: "invalid_token"})
	}

	claims, err := h.Tokens.Verify(token)
	if err != nil {
		return c.JSON(introspectResponse{Active: false, Error: "invalid_token"})
	}

	aud := ""
	if len(claims.Audience) > 0 {
		aud = claims.Audience[0]
	}
	iat := int64(0)
	if claims.IssuedAt != nil {
		iat = claims.IssuedAt.Unix()
	}
	exp := int64(0)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Unix()
	}

	return c.JSON(introspectResponse{
		Active:    true,
		Scope:     claims.Scope,
		Subject:   claims.Subject,
		Audience:  aud,
		Issuer:    claims.Issuer,
		IatUnix:   iat,
		ExpUnix:   exp,
		TokenType: "Bearer",
	})
}
