package gwcore

import (
	"time"

	"github.com/abraxas-iag/gateway/pkg/kernel"
)

// PKCE holds a proof-key-for-code-exchange pair. Verifier is erased once the
// code exchange at the AS succeeds.
type PKCE struct {
	Verifier  string
	Challenge string
}

// Obligations are the run-time constraints ADP attaches to a session. They
// are immutable once written; updating them requires re-authentication.
type Obligations struct {
	BindOrder         string
	HasBindOrder      bool
	MaxAmountCents     int64
	HasMaxAmountCents bool
	MerchantAllowlist []string
	TTLSeconds        int
}

// RSMetadata and ASMetadata are the RS/AS discovery documents a session pins for its
// lifetime once resolved during /session/start.
type RSMetadata struct {
	Resource              string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	ScopesSupported        []string `json:"scopes_supported"`
	IntrospectionEndpoint  string   `json:"introspection_endpoint"`
}

type ASMetadata struct {
	Issuer                string   `json:"issuer"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	IntrospectionEndpoint string   `json:"introspection_endpoint"`
	RegistrationEndpoint  string   `json:"registration_endpoint"`
	ScopesSupported       []string `json:"scopes_supported"`
}

// Session is the gateway's in-memory record of one user-authorized
// capability grant. It is kept entirely server-side; the agent never sees
// AccessToken.
type Session struct {
	SID kernel.SessionID

	Subject kernel.SubjectID
	AgentID kernel.AgentID
	ToolID  kernel.ToolID

	Nonce string

	RSMetadata RSMetadata
	ASMetadata ASMetadata
	Audience   string
	Upstream   string

	RequestedScopes []string
	ScopeString     string
	Context         map[string]any

	PKCE PKCE

	Obligations        Obligations
	ObligationsIssued  time.Time

	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time

	Used      bool
	ObtainedAt time.Time
}

// Ready reports whether the session currently holds a live access token.
// A session is ready iff it holds a non-empty access token, the callback
// has completed (Used), and the token has not expired.
func (s *Session) Ready() bool {
	if s == nil {
		return false
	}
	return s.AccessToken != "" && s.Used && time.Now().Before(s.ExpiresAt)
}

// HasScope reports whether scope is among the session's requested scopes.
func (s *Session) HasScope(scope string) bool {
	for _, sc := range s.RequestedScopes {
		if sc == scope {
			return true
		}
	}
	return false
}

// ClearToken revokes the session's token locally, forcing re-authentication
// on the next tool call. Used on TTL expiry and on upstream 401/403.
func (s *Session) ClearToken() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.Used = false
}

// ToolScope is the static scope→tool mapping enforcing per-scope session
// segregation: a session for one scope must never serve a different
// scope's tool, even for the same underlying subject.
var ToolScope = map[string]string{
	"/mcp/echo":    "echo:read",
	"/mcp/tickets": "tickets:read",
	"/mcp/pay":     "payments:charge",
}

// ToolUpstreamPath maps a gateway tool path to the path it is forwarded to
// on the resource server.
var ToolUpstreamPath = map[string]string{
	"/mcp/echo":    "/mcp/echo",
	"/mcp/tickets": "/tickets",
	"/mcp/pay":     "/orders/{orderId}/pay",
}
