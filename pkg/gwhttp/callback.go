package gwhttp

import (
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// Callback verifies the signed state, rejects replays, exchanges the code
// for a token at the AS, and finalizes the session atomically with
// respect to concurrent tool-call reads.
func (h *Handlers) Callback(c *fiber.Ctx) error {
	if oauthErr := c.Query("error"); oauthErr != "" {
		return c.Status(fiber.StatusBadRequest).SendString("authorization failed: " + oauthErr)
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return gwcore.ErrInvalidRequest("code and state are required")
	}

	payload, err := gwcore.VerifyState([]byte(h.Cfg.StateSecret), state)
	if err != nil {
		return err
	}

	session, ok := h.Sessions.Get(payload.SID)
	if !ok {
		return gwcore.ErrSessionNotFound()
	}
	if session.Used {
		return gwcore.ErrSessionUsed()
	}
	if payload.Audience != session.Audience || payload.Scope != session.ScopeString {
		return gwcore.ErrSessionMismatch()
	}

	clientID, err := h.Registrar.ClientIDFor(c.Context(), session.ASMetadata.Issuer, session.ASMetadata.RegistrationEndpoint, h.Cfg.BaseURL+"/oauth/callback")
	if err != nil {
		return gwcore.ErrTokenExchangeFailed(err.Error())
	}

	result, err := gwinfra.ExchangeCode(c.Context(), session.ASMetadata.TokenEndpoint, clientID, h.Cfg.BaseURL+"/oauth/callback", code, session.PKCE.Verifier, session.Audience)
	if err != nil {
		return err
	}

	finalized := h.Sessions.Mutate(payload.SID, func(s *gwcore.Session) {
		s.AccessToken = result.AccessToken
		s.RefreshToken = result.RefreshToken
		s.ExpiresAt = result.ExpiresAt
		s.PKCE.Verifier = ""
		s.Used = true
		s.ObtainedAt = time.Now()
	})
	if !finalized {
		return gwcore.ErrSessionNotFound()
	}

	logx.WithFields(logx.Fields{"sid": string(payload.SID)}).Info("session ready")

	return c.SendString("Authorization complete. You may close this window.")
}
