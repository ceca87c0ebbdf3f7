// Package adp implements the Authorizer's delegation model and policy
// evaluation: verifying signed delegation credentials, persisting them by
// (subject, agent_id, tool_id), and deciding allowed scopes and
// obligations for a tool call.
package adp

import "github.com/abraxas-iag/gateway/pkg/kernel"

// Constraints bound what a delegation authorizes beyond raw scopes.
type Constraints struct {
	MaxAmountCents *int64   `json:"max_amount_cents,omitempty"`
	Merchants      []string `json:"merchants,omitempty"`
}

// Delegation is the persistent record of a user's grant of capability to
// an agent for a tool, keyed by (subject, agent_id, tool_id). Newer writes
// upsert; only one delegation exists per key.
type Delegation struct {
	Subject     kernel.SubjectID `json:"subject"`
	AgentID     kernel.AgentID   `json:"agent_id"`
	ToolID      kernel.ToolID    `json:"tool_id"`
	Scopes      []string         `json:"scopes"`
	NotAfter    int64            `json:"not_after"`
	Issuer      string           `json:"iss"`
	Constraints Constraints      `json:"constraints,omitempty"`
	Envelope    string           `json:"envelope"` // raw signed jws, kept for audit
}

// Key returns the delegation's primary-key string, used as the bbolt
// bucket key.
func (d Delegation) Key() string {
	return d.Subject.String() + "|" + d.AgentID.String() + "|" + d.ToolID.String()
}

// Expired reports whether NotAfter has passed as of now (unix seconds).
func (d Delegation) Expired(nowUnix int64) bool {
	return nowUnix >= d.NotAfter
}

// HasScope reports whether scope is present in the delegation's scope set.
func (d Delegation) HasScope(scope string) bool {
	for _, s := range d.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
