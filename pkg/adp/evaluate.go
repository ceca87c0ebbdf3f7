package adp

// EvalContext is the free-form per-request context the gateway forwards,
// used to check constraints and derive obligations.
type EvalContext struct {
	OrderID     string
	AmountCents int64
	HasAmount   bool
	MerchantID  string
	HasMerchant bool
}

// EvalResult is the decision /evaluate returns.
type EvalResult struct {
	Allow       bool
	Scopes      []string
	BindOrder   string
	HasBindOrder bool
	MaxAmountCents *int64
	Merchants      []string
	TTL            int
}

// Evaluate implements the /evaluate policy decision: intersect requested
// and delegated scopes (falling back to the full
// delegated set when the intersection is empty), enforce constraints
// against context, and emit obligations. defaultTTL is ADP's canonical
// ttl source absent a more specific value.
func Evaluate(delegation *Delegation, requestedScopes []string, ctx EvalContext, demoMode bool, defaultTTL int) EvalResult {
	if delegation == nil {
		if !demoMode {
			return EvalResult{Allow: false}
		}
		res := EvalResult{Allow: true, Scopes: requestedScopes, TTL: defaultTTL}
		if ctx.OrderID != "" {
			res.BindOrder = ctx.OrderID
			res.HasBindOrder = true
		}
		return res
	}

	scopes := intersect(requestedScopes, delegation.Scopes)
	if len(scopes) == 0 {
		scopes = delegation.Scopes
	}
	if len(scopes) == 0 {
		return EvalResult{Allow: false}
	}

	if delegation.Constraints.MaxAmountCents != nil && ctx.HasAmount && ctx.AmountCents > *delegation.Constraints.MaxAmountCents {
		return EvalResult{Allow: false}
	}
	if len(delegation.Constraints.Merchants) > 0 && ctx.HasMerchant && !contains(delegation.Constraints.Merchants, ctx.MerchantID) {
		return EvalResult{Allow: false}
	}

	res := EvalResult{
		Allow:          true,
		Scopes:         scopes,
		MaxAmountCents: delegation.Constraints.MaxAmountCents,
		Merchants:      delegation.Constraints.Merchants,
		TTL:            defaultTTL,
	}
	if ctx.OrderID != "" {
		res.BindOrder = ctx.OrderID
		res.HasBindOrder = true
	}
	return res
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
