package adphttp

import (
	"github.com/abraxas-iag/gateway/pkg/adp"
	"github.com/abraxas-iag/gateway/pkg/kernel"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

type postDelegationRequest struct {
	JWS       string       `json:"jws"`
	PublicJWK adp.PublicJWK `json:"public_jwk"`
}

// PostDelegation verifies the signed delegation envelope, upserts the
// decoded delegation by (subject, agent_id, tool_id), and persists the
// raw envelope for audit.
func (h *Handlers) PostDelegation(c *fiber.Ctx) error {
	var req postDelegationRequest
	if err := c.BodyParser(&req); err != nil || req.JWS == "" {
		return adp.ErrInvalidRequest("jws and public_jwk are required")
	}

	claims, err := adp.VerifyJWS(req.JWS, req.PublicJWK)
	if err != nil {
		return err
	}

	delegation := adp.Delegation{
		Subject:     kernel.NewSubjectID(claims.Subject),
		AgentID:     kernel.NewAgentID(claims.AgentID),
		ToolID:      kernel.NewToolID(claims.ToolID),
		Scopes:      claims.Scopes,
		NotAfter:    claims.EffectiveNotAfter(),
		Issuer:      claims.Issuer,
		Constraints: claims.Constraints,
		Envelope:    req.JWS,
	}

	if err := h.Store.Upsert(delegation); err != nil {
		return adp.ErrStoreUnavailable(err.Error())
	}
	if err := h.Audit.Record(c.Context(), delegation); err != nil {
		logx.WithError(err).Warn("failed to record delegation audit entry")
	}

	logx.WithFields(logx.Fields{"subject": claims.Subject, "tool_id": claims.ToolID}).Info("delegation accepted")

	return c.Status(fiber.StatusCreated).JSON(delegation)
}

// ListDelegations returns every stored delegation, backing the round-trip
// law that an accepted delegation is visible via GET /delegations until a
// later upsert.
func (h *Handlers) ListDelegations(c *fiber.Ctx) error {
	delegations, err := h.Store.All()
	if err != nil {
		return adp.ErrStoreUnavailable(err.Error())
	}
	return c.JSON(delegations)
}
