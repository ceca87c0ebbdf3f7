package asrv

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload minted into the AS's demo access tokens.
type AccessClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies the AS's HS256 access tokens: a
// secretKey/ttl/issuer shape carrying a resolved audience and scope
// instead of user/tenant claims.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

func NewTokenService(secret string, ttl time.Duration, issuer string) *TokenService {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &TokenService{secretKey: []byte(secret), ttl: ttl, issuer: issuer}
}

// Mint issues an access token for subject, bound to aud, carrying scope.
func (s *TokenService) Mint(subject, scope, aud string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)

	claims := AccessClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{aud},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses and validates a token minted by Mint.
func (s *TokenService) Verify(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	return claims, nil
}
