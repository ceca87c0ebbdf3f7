package gwhttp

import (
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
	"github.com/abraxas-iag/gateway/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Consent renders the explicit-approval page for a session ADP did not
// auto-consent. Rendering itself is out of scope here; this
// returns the data a real consent UI would use.
func (h *Handlers) Consent(c *fiber.Ctx) error {
	sid := c.Query("sid")
	if sid == "" {
		return gwcore.ErrInvalidRequest("sid is required")
	}
	session, ok := h.Sessions.Get(kernel.NewSessionID(sid))
	if !ok {
		return gwcore.ErrSessionNotFound()
	}
	return c.JSON(fiber.Map{
		"sid":    sid,
		"scopes": session.RequestedScopes,
		"tool":   session.ToolID.String(),
	})
}

type consentApproveRequest struct {
	SID string `json:"sid"`
}

// ConsentApprove re-runs the ADP consent call with explicit=true and, on
// approval, issues the authorize_url the agent should open next.
func (h *Handlers) ConsentApprove(c *fiber.Ctx) error {
	var req consentApproveRequest
	if err := c.BodyParser(&req); err != nil || req.SID == "" {
		return gwcore.ErrInvalidRequest("sid is required")
	}
	session, ok := h.Sessions.Get(kernel.NewSessionID(req.SID))
	if !ok {
		return gwcore.ErrSessionNotFound()
	}

	consentResp, err := h.ADP.Consent(c.Context(), gwinfra.ConsentRequest{
		Subject:  session.Subject.String(),
		AgentID:  session.AgentID.String(),
		ToolID:   session.ToolID.String(),
		Audience: session.Audience,
		Scopes:   session.RequestedScopes,
		Explicit: true,
	})
	if err != nil {
		return gwcore.ErrBadGateway(err.Error())
	}
	if !consentResp.Allow {
		return gwcore.ErrExplicitRequired()
	}

	clientID, err := h.Registrar.ClientIDFor(c.Context(), session.ASMetadata.Issuer, session.ASMetadata.RegistrationEndpoint, h.Cfg.BaseURL+"/oauth/callback")
	if err != nil {
		return gwcore.ErrStartFailed("dynamic client registration failed: " + err.Error())
	}

	state, err := gwcore.SignState([]byte(h.Cfg.StateSecret), gwcore.StatePayload{
		SID:       session.SID,
		IAT:       time.Now().Unix(),
		Audience:  session.Audience,
		Scope:     session.ScopeString,
		Nonce:     session.Nonce,
		CtxDigest: gwcore.ContextDigest(session.Context),
	})
	if err != nil {
		return gwcore.ErrStartFailed("failed to sign state")
	}

	authorizeURL := gwinfra.BuildAuthorizeURL(session.ASMetadata.AuthorizationEndpoint, clientID, h.Cfg.BaseURL+"/oauth/callback", session.ScopeString, state, session.PKCE.Challenge, session.Audience)

	return c.JSON(fiber.Map{"authorize_url": authorizeURL, "record_id": consentResp.RecordID})
}
