package gwcore

import (
	"time"

	"github.com/abraxas-iag/gateway/pkg/errx"
)

// ToolRequest is the subset of an incoming /mcp/* call relevant to
// obligation enforcement.
type ToolRequest struct {
	OrderID    string
	AmountCents int64
	MerchantID string
}

// CheckObligations enforces a session's obligations in the fixed order the
// spec requires: binding, amount, merchant, ttl. The first violation
// short-circuits the rest. TTL expiry is reported distinctly so the caller
// can clear the session's token and force re-auth.
func CheckObligations(ob Obligations, issuedAt time.Time, req ToolRequest, now time.Time) *errx.Error {
	if ob.HasBindOrder && req.OrderID != ob.BindOrder {
		return ErrObligationViolation("orderId mismatch")
	}
	if ob.HasMaxAmountCents && req.AmountCents > ob.MaxAmountCents {
		return ErrObligationViolation("amount exceeds max")
	}
	if len(ob.MerchantAllowlist) > 0 && !contains(ob.MerchantAllowlist, req.MerchantID) {
		return ErrObligationViolation("merchant not allowed")
	}
	if ob.TTLSeconds > 0 {
		if now.Sub(issuedAt) > time.Duration(ob.TTLSeconds)*time.Second {
			return ErrTTLExpired()
		}
	}
	return nil
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
