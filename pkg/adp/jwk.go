package adp

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
)

// PublicJWK is the minimal JSON Web Key shape the delegation endpoint
// accepts alongside the signed envelope: enough fields to reconstruct an
// EdDSA, ES256, or RS256 public key without pulling in a general-purpose
// JOSE library the corpus does not otherwise depend on.
type PublicJWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
}

// PublicKey reconstructs the Go crypto public key the JWK describes.
func (j PublicJWK) PublicKey() (any, error) {
	switch j.Kty {
	case "OKP":
		if j.Crv != "Ed25519" {
			return nil, fmt.Errorf("unsupported OKP curve %q", j.Crv)
		}
		raw, err := decodeB64(j.X)
		if err != nil {
			return nil, fmt.Errorf("decoding x: %w", err)
		}
		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid ed25519 public key length %d", len(raw))
		}
		return ed25519.PublicKey(raw), nil

	case "EC":
		if j.Crv != "P-256" {
			return nil, fmt.Errorf("unsupported EC curve %q", j.Crv)
		}
		xb, err := decodeB64(j.X)
		if err != nil {
			return nil, fmt.Errorf("decoding x: %w", err)
		}
		yb, err := decodeB64(j.Y)
		if err != nil {
			return nil, fmt.Errorf("decoding y: %w", err)
		}
		return &ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(xb),
			Y:     new(big.Int).SetBytes(yb),
		}, nil

	case "RSA":
		nb, err := decodeB64(j.N)
		if err != nil {
			return nil, fmt.Errorf("decoding n: %w", err)
		}
		eb, err := decodeB64(j.E)
		if err != nil {
			return nil, fmt.Errorf("decoding e: %w", err)
		}
		e := new(big.Int).SetBytes(eb)
		return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: int(e.Int64())}, nil

	default:
		return nil, fmt.Errorf("unsupported jwk kty %q", j.Kty)
	}
}

func decodeB64(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
