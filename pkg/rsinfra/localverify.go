package rsinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/abraxas-iag/gateway/pkg/rs"
	"github.com/golang-jwt/jwt/v5"
)

// localClaims mirrors the AS's asrv.AccessClaims shape without importing
// the AS package, keeping the resource server's verification dependency
// surface limited to the token format itself.
type localClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// LocalJWTVerifier validates tokens directly against a shared HS256
// signing secret, for deployments that prefer to avoid a network round
// trip to the AS on every protected request.
type LocalJWTVerifier struct {
	secretKey []byte
}

func NewLocalJWTVerifier(secret string) *LocalJWTVerifier {
	return &LocalJWTVerifier{secretKey: []byte(secret)}
}

// Verify validates the token entirely in-process, so ctx is unused; it is
// accepted to satisfy rs.TokenVerifier alongside the introspection-backed
// implementation, which does make an outbound call.
func (v *LocalJWTVerifier) Verify(_ context.Context, token string) (rs.TokenInfo, error) {
	claims := &localClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return rs.TokenInfo{Active: false}, nil
	}

	aud := ""
	if len(claims.Audience) > 0 {
		aud = claims.Audience[0]
	}

	return rs.TokenInfo{
		Active:   true,
		Subject:  claims.Subject,
		Audience: aud,
		Scope:    claims.Scope,
		Scopes:   strings.Fields(claims.Scope),
	}, nil
}
