package ashttp

import (
	"net/url"

	"github.com/abraxas-iag/gateway/pkg/asrv"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Authorize validates the client and redirect URI, verifies the request
// carries S256 PKCE parameters, auto-approves consent (this AS is a demo
// counterparty, not a production IdP), stores a fresh single-use code, and
// redirects back to the client.
func (h *Handlers) Authorize(c *fiber.Ctx) error {
	responseType := c.Query("response_type")
	clientID := c.Query("client_id")
	redirectURI := c.Query("redirect_uri")
	scope := c.Query("scope")
	state := c.Query("state")
	challenge := c.Query("code_challenge")
	challengeMethod := c.Query("code_challenge_method")
	resource := c.Query("resource")

	if responseType != "code" || clientID == "" || redirectURI == "" || state == "" {
		return asrv.ErrInvalidRequest("response_type, client_id, redirect_uri, and state are required")
	}
	if challenge == "" || challengeMethod != "S256" {
		return asrv.ErrInvalidRequest("code_challenge with method S256 is required")
	}

	client, found, err := h.Clients.Get(clientID)
	if err != nil {
		return asrv.ErrStoreError(err.Error())
	}
	if !found {
		return asrv.ErrInvalidClient("unknown client_id")
	}
	if !client.AllowsRedirect(redirectURI) {
		return asrv.ErrInvalidClient("redirect_uri not registered for this client")
	}

	code := uuid.NewString()
	req := asrv.AuthorizationRequest{
		Code:              code,
		ClientID:          clientID,
		RedirectURI:       redirectURI,
		Scope:             scope,
		StateOpaque:       state,
		CodeChallenge:     challenge,
		ResourceIndicator: resource,
	}
	if err := h.Codes.Put(c.Context(), req, h.Cfg.CodeTTL); err != nil {
		return asrv.ErrStoreError(err.Error())
	}

	redirect := redirectURI + "?" + url.Values{"code": {code}, "state": {state}}.Encode()
	return c.Redirect(redirect, fiber.StatusFound)
}
