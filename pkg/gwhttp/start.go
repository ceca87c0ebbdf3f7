package gwhttp

import (
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
	"github.com/abraxas-iag/gateway/pkg/kernel"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

type startSessionRequest struct {
	ToolID  string         `json:"tool_id"`
	Scope   string         `json:"scope"`
	Context map[string]any `json:"context"`
}

type startSessionResponse struct {
	SID          string `json:"sid"`
	AuthorizeURL string `json:"authorize_url,omitempty"`
}

// StartSession runs the six-step session-start state machine: discovery,
// AS resolution, policy evaluation, consent decision, PKCE/state
// generation, and session creation.
func (h *Handlers) StartSession(c *fiber.Ctx) error {
	var req startSessionRequest
	if err := c.BodyParser(&req); err != nil || req.ToolID == "" || req.Scope == "" {
		return gwcore.ErrInvalidRequest("tool_id and scope are required")
	}
	ctx := c.Context()

	// 1. Discovery
	rsMeta, err := h.Discovery.DiscoverRS(ctx, h.Cfg.UpstreamRS)
	if err != nil {
		return err
	}

	// 2. AS resolution
	asMeta, err := h.Discovery.DiscoverAS(ctx, rsMeta)
	if err != nil {
		return err
	}

	// 3. Policy
	evalResp, err := h.ADP.Evaluate(ctx, gwinfra.EvaluateRequest{
		Subject:         h.Cfg.DemoSubject,
		AgentID:         h.Cfg.DemoAgentID,
		ToolID:          req.ToolID,
		Audience:        rsMeta.Resource,
		RequestedScopes: []string{req.Scope},
		Context:         req.Context,
	})
	if err != nil {
		return gwcore.ErrBadGateway(err.Error())
	}
	if !evalResp.Allow {
		return gwcore.ErrDeniedByPolicy()
	}
	scopes := evalResp.Scopes
	if len(scopes) == 0 {
		scopes = []string{req.Scope}
	}
	obligations := parseObligations(evalResp.Obligations)

	// 4. Consent decision
	consentResp, err := h.ADP.Consent(ctx, gwinfra.ConsentRequest{
		Subject:  h.Cfg.DemoSubject,
		AgentID:  h.Cfg.DemoAgentID,
		ToolID:   req.ToolID,
		Audience: rsMeta.Resource,
		Scopes:   scopes,
		Explicit: false,
	})
	if err != nil {
		return gwcore.ErrBadGateway(err.Error())
	}

	// 5. PKCE + state
	pkce, err := gwcore.GeneratePKCE()
	if err != nil {
		return gwcore.ErrStartFailed("failed to generate pkce")
	}
	sid, err := gwcore.NewSessionID()
	if err != nil {
		return gwcore.ErrStartFailed("failed to generate session id")
	}
	nonce, err := gwcore.NewNonce()
	if err != nil {
		return gwcore.ErrStartFailed("failed to generate nonce")
	}
	scopeString := joinScopes(scopes)

	session := &gwcore.Session{
		SID:             sid,
		Subject:         kernel.NewSubjectID(h.Cfg.DemoSubject),
		AgentID:         kernel.NewAgentID(h.Cfg.DemoAgentID),
		ToolID:          kernel.NewToolID(req.ToolID),
		Nonce:           nonce,
		RSMetadata:      rsMeta,
		ASMetadata:      asMeta,
		Audience:        rsMeta.Resource,
		Upstream:        h.Cfg.UpstreamRS,
		RequestedScopes: scopes,
		ScopeString:     scopeString,
		Context:         req.Context,
		PKCE:            pkce,
		Obligations:         obligations,
		ObligationsIssued:   time.Now(),
		ObtainedAt:          time.Now(),
	}

	var authorizeURL string
	if consentResp.Allow {
		clientID, err := h.Registrar.ClientIDFor(ctx, asMeta.Issuer, asMeta.RegistrationEndpoint, h.Cfg.BaseURL+"/oauth/callback")
		if err != nil {
			return gwcore.ErrStartFailed("dynamic client registration failed: " + err.Error())
		}
		state, err := gwcore.SignState([]byte(h.Cfg.StateSecret), gwcore.StatePayload{
			SID:       sid,
			IAT:       time.Now().Unix(),
			Audience:  rsMeta.Resource,
			Scope:     scopeString,
			Nonce:     nonce,
			CtxDigest: gwcore.ContextDigest(req.Context),
		})
		if err != nil {
			return gwcore.ErrStartFailed("failed to sign state")
		}
		authorizeURL = gwinfra.BuildAuthorizeURL(asMeta.AuthorizationEndpoint, clientID, h.Cfg.BaseURL+"/oauth/callback", scopeString, state, pkce.Challenge, rsMeta.Resource)
	} else {
		authorizeURL = h.Cfg.BaseURL + "/consent?sid=" + string(sid)
	}

	h.Sessions.Insert(session)

	logx.WithFields(logx.Fields{"sid": string(sid), "tool_id": req.ToolID, "scope": req.Scope}).Info("session started")

	return c.JSON(startSessionResponse{SID: string(sid), AuthorizeURL: authorizeURL})
}

func parseObligations(raw map[string]any) gwcore.Obligations {
	var ob gwcore.Obligations
	if v, ok := raw["bind_order"].(string); ok && v != "" {
		ob.BindOrder = v
		ob.HasBindOrder = true
	}
	if v, ok := raw["max_amount_cents"]; ok {
		if n, ok := toInt64(v); ok {
			ob.MaxAmountCents = n
			ob.HasMaxAmountCents = true
		}
	}
	if v, ok := raw["merchant_allowlist"].([]any); ok {
		for _, m := range v {
			if s, ok := m.(string); ok {
				ob.MerchantAllowlist = append(ob.MerchantAllowlist, s)
			}
		}
	}
	if v, ok := raw["ttl"]; ok {
		if n, ok := toInt64(v); ok {
			ob.TTLSeconds = int(n)
		}
	}
	if ob.TTLSeconds == 0 {
		ob.TTLSeconds = 900
	}
	return ob
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func joinScopes(scopes []string) string {
	out := ""
	for i, s := range scopes {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
