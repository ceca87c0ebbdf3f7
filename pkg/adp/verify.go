package adp

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DelegationClaims is the payload carried by the signed delegation
// credential: {subject, agent_id, tool_id, scopes[], not_after|exp, iss,
// constraints?}.
type DelegationClaims struct {
	Subject     string      `json:"subject"`
	AgentID     string      `json:"agent_id"`
	ToolID      string      `json:"tool_id"`
	Scopes      []string    `json:"scopes"`
	NotAfter    *int64      `json:"not_after,omitempty"`
	Constraints Constraints `json:"constraints,omitempty"`
	jwt.RegisteredClaims
}

// EffectiveNotAfter resolves the not_after|exp alias: an explicit
// not_after claim takes precedence over the registered exp claim.
func (c DelegationClaims) EffectiveNotAfter() int64 {
	if c.NotAfter != nil {
		return *c.NotAfter
	}
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Unix()
	}
	return 0
}

// VerifyJWS verifies a compact JWS against the supplied public JWK,
// accepting EdDSA, ES256, or RS256 with a five-second clock skew
// allowance, and returns the decoded claims.
func VerifyJWS(token string, jwk PublicJWK) (DelegationClaims, error) {
	var claims DelegationClaims

	key, err := jwk.PublicKey()
	if err != nil {
		return claims, ErrBadSignature(err.Error())
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"EdDSA", "ES256", "RS256"}),
		jwt.WithLeeway(5*time.Second),
	)

	parsed, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return claims, ErrBadSignature(err.Error())
	}
	if !parsed.Valid {
		return claims, ErrBadSignature("token failed validation")
	}

	if claims.Subject == "" || claims.AgentID == "" || claims.ToolID == "" || len(claims.Scopes) == 0 {
		return claims, ErrBadClaims("subject, agent_id, tool_id, and scopes are required")
	}
	if claims.EffectiveNotAfter() == 0 {
		return claims, ErrBadClaims("not_after or exp is required")
	}
	now := time.Now().Add(-5 * time.Second).Unix()
	if claims.EffectiveNotAfter() < now {
		return claims, ErrBadClaims("delegation already expired")
	}
	if claims.Constraints.MaxAmountCents != nil && *claims.Constraints.MaxAmountCents <= 0 {
		return claims, ErrBadConstraints("max_amount_cents must be positive")
	}

	return claims, nil
}
