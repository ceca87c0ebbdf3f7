package gwinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"golang.org/x/oauth2"
)

// TokenExchangeResult is the subset of an oauth2.Token the gateway persists
// on the session.
type TokenExchangeResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// BuildAuthorizeURL constructs the AS-facing authorization URL using
// golang.org/x/oauth2's Config, the same library the rest of the retrieval
// corpus reaches for instead of hand-building form-encoded query strings.
// PKCE challenge and the resource indicator are attached as extra auth URL
// params since the verifier itself is generated by gwcore.GeneratePKCE and
// lives on the session, not inside the oauth2.Config.
func BuildAuthorizeURL(authEndpoint, clientID, redirectURI, scope, state, challenge, audience string) string {
	cfg := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Endpoint:    oauth2.Endpoint{AuthURL: authEndpoint},
		Scopes:      []string{scope},
	}
	return cfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("resource", audience),
	)
}

// ExchangeCode performs the PKCE code exchange against the AS token
// endpoint via oauth2.Config.Exchange, passing the verifier the gateway
// generated at /session/start and the resource indicator for audience
// binding (RFC 8707).
func ExchangeCode(ctx context.Context, tokenEndpoint, clientID, redirectURI, code, verifier, audience string) (TokenExchangeResult, error) {
	cfg := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Endpoint:    oauth2.Endpoint{TokenURL: tokenEndpoint, AuthStyle: oauth2.AuthStyleInParams},
	}

	tok, err := cfg.Exchange(ctx, code,
		oauth2.VerifierOption(verifier),
		oauth2.SetAuthURLParam("resource", audience),
	)
	if err != nil {
		return TokenExchangeResult{}, gwcore.ErrTokenExchangeFailed(fmt.Sprintf("%v", err))
	}

	res := TokenExchangeResult{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	if tok.Expiry.IsZero() {
		res.ExpiresAt = time.Now().Add(900 * time.Second)
	} else {
		res.ExpiresAt = tok.Expiry
	}
	return res, nil
}
