package rs

import "context"

// ProtectedResourceMetadata is the RFC 9728 document this resource server
// publishes at /.well-known/oauth-protected-resource so a gateway can
// discover which authorization servers and scopes govern it.
type ProtectedResourceMetadata struct {
	Resource              string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	ScopesSupported        []string `json:"scopes_supported"`
	IntrospectionEndpoint  string   `json:"introspection_endpoint"`
}

// TokenInfo is the normalized result of validating a bearer token,
// regardless of whether validation happened via introspection or local
// JWT verification.
type TokenInfo struct {
	Active   bool
	Subject  string
	Audience string
	Scope    string
	Scopes   []string
}

// HasScope reports whether the token carries the given scope.
func (t TokenInfo) HasScope(scope string) bool {
	for _, s := range t.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenVerifier validates a bearer token string and returns its claims.
// RSInfra provides two implementations: one backed by AS introspection,
// one by local JWT verification against a shared signing secret. ctx
// carries the inbound request's deadline/cancellation through to whatever
// upstream call verification makes.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (TokenInfo, error)
}
