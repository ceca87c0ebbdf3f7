package adp

import "fmt"

// ConsentDecision is the outcome of /consent.
type ConsentDecision struct {
	Allow    bool
	RecordID string
	Reason   string
}

// DecideConsent implements: auto-allow when a delegation already covers
// every requested scope, allow with an explicit record when the caller
// passed explicit=true, otherwise deny asking for explicit consent.
func DecideConsent(delegation *Delegation, requestedScopes []string, explicit bool, nowUnix int64) ConsentDecision {
	if delegation != nil && coversAll(delegation.Scopes, requestedScopes) {
		return ConsentDecision{Allow: true, RecordID: fmt.Sprintf("auto-%d", nowUnix)}
	}
	if explicit {
		return ConsentDecision{Allow: true, RecordID: fmt.Sprintf("exp-%d", nowUnix)}
	}
	return ConsentDecision{Allow: false, Reason: "explicit_required"}
}

func coversAll(delegated, requested []string) bool {
	set := make(map[string]bool, len(delegated))
	for _, s := range delegated {
		set[s] = true
	}
	for _, s := range requested {
		if !set[s] {
			return false
		}
	}
	return true
}
