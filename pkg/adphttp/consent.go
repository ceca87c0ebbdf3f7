package adphttp

import (
	"github.com/abraxas-iag/gateway/pkg/adp"
	"github.com/gofiber/fiber/v2"
)

type consentRequest struct {
	Subject  string   `json:"subject"`
	AgentID  string   `json:"agent_id"`
	ToolID   string   `json:"tool_id"`
	Audience string   `json:"audience"`
	Scopes   []string `json:"scopes"`
	Explicit bool     `json:"explicit"`
}

type consentResponse struct {
	Allow    bool   `json:"allow"`
	RecordID string `json:"record_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// PostConsent implements the authorizer's /consent decision.
func (h *Handlers) PostConsent(c *fiber.Ctx) error {
	var req consentRequest
	if err := c.BodyParser(&req); err != nil || req.Subject == "" || req.AgentID == "" || req.ToolID == "" {
		return adp.ErrInvalidRequest("subject, agent_id, and tool_id are required")
	}

	key := req.Subject + "|" + req.AgentID + "|" + req.ToolID
	delegation, found, err := h.Store.Get(key)
	if err != nil {
		return adp.ErrStoreUnavailable(err.Error())
	}
	var delegationPtr *adp.Delegation
	if found {
		delegationPtr = &delegation
	}

	decision := adp.DecideConsent(delegationPtr, req.Scopes, req.Explicit, nowUnix())
	return c.JSON(consentResponse{Allow: decision.Allow, RecordID: decision.RecordID, Reason: decision.Reason})
}
