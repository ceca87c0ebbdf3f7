package ashttp

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/abraxas-iag/gateway/pkg/asrv"
	"github.com/gofiber/fiber/v2"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// Token implements the authorization_code grant with mandatory PKCE
// verification and resource-indicator audience resolution. The audience
// bound into the minted token follows, in priority order: the resource
// parameter on this token request, the resource parameter captured at
// /authorize time, then the AS's configured default audience.
func (h *Handlers) Token(c *fiber.Ctx) error {
	grantType := c.FormValue("grant_type")
	code := c.FormValue("code")
	clientID := c.FormValue("client_id")
	redirectURI := c.FormValue("redirect_uri")
	verifier := c.FormValue("code_verifier")
	tokenResource := c.FormValue("resource")

	if grantType != "authorization_code" || code == "" || clientID == "" || verifier == "" {
		return asrv.ErrInvalidRequest("grant_type, code, client_id, and code_verifier are required")
	}

	req, found, err := h.Codes.Redeem(c.Context(), code)
	if err != nil {
		return asrv.ErrStoreError(err.Error())
	}
	if !found {
		return asrv.ErrInvalidGrant("code unknown, expired, or already redeemed")
	}

	if req.ClientID != clientID || req.RedirectURI != redirectURI {
		return asrv.ErrInvalidGrant("client_id or redirect_uri does not match the authorization request")
	}

	if !verifyPKCE(req.CodeChallenge, verifier) {
		return asrv.ErrBadPKCE()
	}

	aud := tokenResource
	if aud == "" {
		aud = req.ResourceIndicator
	}
	if aud == "" {
		aud = h.Cfg.DefaultAud
	}

	// sub is the demo end-user identity, not the OAuth client_id: this AS
	// has no real login step of its own, so every token it mints stands in
	// for the one configured demo subject rather than the calling client.
	access, _, err := h.Tokens.Mint(h.Cfg.DefaultSubject, req.Scope, aud)
	if err != nil {
		return asrv.ErrStoreError(err.Error())
	}

	return c.JSON(tokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.Cfg.TokenTTL.Seconds()),
		Scope:       req.Scope,
	})
}

func verifyPKCE(challenge, verifier string) bool {
	sum := sha256.Sum256([]byte(verifier))
	computed := base64.RawURLEncoding.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(challenge)) == 1
}
