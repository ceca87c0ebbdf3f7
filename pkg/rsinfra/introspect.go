// Package rsinfra holds the Resource Server's token-verification
// adapters: remote RFC 7662 introspection against the AS, and an
// optional local JWT verifier for deployments that configure a shared
// signing secret instead of a network round trip per request.
package rsinfra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abraxas-iag/gateway/pkg/rs"
)

// IntrospectVerifier validates bearer tokens by calling the AS's
// /introspect endpoint for every request.
type IntrospectVerifier struct {
	URL  string
	HTTP *http.Client
}

func NewIntrospectVerifier(introspectURL string) *IntrospectVerifier {
	return &IntrospectVerifier{URL: introspectURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

type introspectResponse struct {
	Active bool   `json:"active"`
	Scope  string `json:"scope"`
	Sub    string `json:"sub"`
	Aud    string `json:"aud"`
}

func (v *IntrospectVerifier) Verify(ctx context.Context, token string) (rs.TokenInfo, error) {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return rs.TokenInfo{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.HTTP.Do(req)
	if err != nil {
		return rs.TokenInfo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return rs.TokenInfo{}, rs.ErrIntrospectionFailed("introspection endpoint returned non-2xx")
	}

	var body introspectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return rs.TokenInfo{}, err
	}
	if !body.Active {
		return rs.TokenInfo{Active: false}, nil
	}
	return rs.TokenInfo{
		Active:   true,
		Subject:  body.Sub,
		Audience: body.Aud,
		Scope:    body.Scope,
		Scopes:   strings.Fields(body.Scope),
	}, nil
}
