package adphttp

import (
	"github.com/abraxas-iag/gateway/pkg/adp"
	"github.com/gofiber/fiber/v2"
)

type evaluateRequest struct {
	Subject         string         `json:"subject"`
	AgentID         string         `json:"agent_id"`
	ToolID          string         `json:"tool_id"`
	Audience        string         `json:"audience"`
	RequestedScopes []string       `json:"requested_scopes"`
	Context         map[string]any `json:"context"`
}

type evaluateResponse struct {
	Allow       bool           `json:"allow"`
	Scopes      []string       `json:"scopes"`
	Obligations map[string]any `json:"obligations"`
}

// PostEvaluate implements the policy decision for /evaluate: load the delegation
// for (subject, agent_id, tool_id), intersect scopes, evaluate
// constraints against context, and emit obligations.
func (h *Handlers) PostEvaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil || req.Subject == "" || req.AgentID == "" || req.ToolID == "" {
		return adp.ErrInvalidRequest("subject, agent_id, and tool_id are required")
	}

	key := req.Subject + "|" + req.AgentID + "|" + req.ToolID
	delegation, found, err := h.Store.Get(key)
	if err != nil {
		return adp.ErrStoreUnavailable(err.Error())
	}
	var delegationPtr *adp.Delegation
	if found && !delegation.Expired(nowUnix()) {
		delegationPtr = &delegation
	}

	evalCtx := adp.EvalContext{}
	if v, ok := req.Context["orderId"].(string); ok {
		evalCtx.OrderID = v
	}
	if v, ok := req.Context["amount_cents"]; ok {
		if n, ok := toInt64(v); ok {
			evalCtx.AmountCents = n
			evalCtx.HasAmount = true
		}
	}
	if v, ok := req.Context["merchant_id"].(string); ok {
		evalCtx.MerchantID = v
		evalCtx.HasMerchant = true
	}

	result := adp.Evaluate(delegationPtr, req.RequestedScopes, evalCtx, h.Cfg.DemoMode, h.Cfg.DefaultTTL)
	if !result.Allow {
		return c.JSON(evaluateResponse{Allow: false})
	}

	obligations := map[string]any{"ttl": result.TTL}
	if result.HasBindOrder {
		obligations["bind_order"] = result.BindOrder
	}
	if result.MaxAmountCents != nil {
		obligations["max_amount_cents"] = *result.MaxAmountCents
	}
	if len(result.Merchants) > 0 {
		obligations["merchant_allowlist"] = result.Merchants
	}

	return c.JSON(evaluateResponse{Allow: true, Scopes: result.Scopes, Obligations: obligations})
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
