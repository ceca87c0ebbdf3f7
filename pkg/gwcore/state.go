package gwcore

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"

	"github.com/abraxas-iag/gateway/pkg/kernel"
)

// StatePayload is the data bound into the signed OAuth state parameter.
// It is opaque to the AS and the agent client; only the gateway that
// issued it can verify and decode it.
type StatePayload struct {
	SID       kernel.SessionID `json:"sid"`
	IAT       int64            `json:"iat"`
	Audience  string           `json:"aud"`
	Scope     string           `json:"scope"`
	Nonce     string           `json:"n"`
	CtxDigest string           `json:"ctx_digest"`
}

// SignState serializes payload and appends an HMAC-SHA256 tag keyed by
// secret: base64url(payload_json) "." base64url(tag).
func SignState(secret []byte, payload StatePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	encBody := base64.RawURLEncoding.EncodeToString(body)
	tag := hmacTag(secret, []byte(encBody))
	encTag := base64.RawURLEncoding.EncodeToString(tag)
	return encBody + "." + encTag, nil
}

// VerifyState checks the signature in constant time and, on success,
// decodes the embedded payload. It fails with ErrBadSignature,
// ErrBadPayload, or ErrMalformedState, matching the exact failure modes
// the round-trip law in the testable properties requires.
func VerifyState(secret []byte, state string) (StatePayload, error) {
	var payload StatePayload

	idx := -1
	for i := len(state) - 1; i >= 0; i-- {
		if state[i] == '.' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return payload, ErrMalformedState()
	}
	encBody, encTag := state[:idx], state[idx+1:]

	wantTag := hmacTag(secret, []byte(encBody))
	gotTag, err := base64.RawURLEncoding.DecodeString(encTag)
	if err != nil {
		return payload, ErrMalformedState()
	}
	if subtle.ConstantTimeCompare(wantTag, gotTag) != 1 {
		return payload, ErrBadSignature()
	}

	body, err := base64.RawURLEncoding.DecodeString(encBody)
	if err != nil {
		return payload, ErrBadPayload()
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, ErrBadPayload()
	}
	return payload, nil
}

func hmacTag(secret, msg []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(msg)
	return mac.Sum(nil)
}

// ContextDigest returns a stable, truncated digest of a free-form context
// map, bound into the signed state so a callback cannot be replayed
// against a session started with different context.
func ContextDigest(ctx map[string]any) string {
	body, _ := json.Marshal(ctx)
	sum := sha256.Sum256(body)
	return base64.RawURLEncoding.EncodeToString(sum[:])[:22]
}

// GeneratePKCE creates a 256-bit verifier and its S256 challenge, per
// RFC 7636.
func GeneratePKCE() (PKCE, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return PKCE{}, err
	}
	verifier := base64.RawURLEncoding.EncodeToString(raw)
	sum := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])
	return PKCE{Verifier: verifier, Challenge: challenge}, nil
}

// NewSessionID generates a random 128-bit opaque session identifier.
func NewSessionID() (kernel.SessionID, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return kernel.NewSessionID(base64.RawURLEncoding.EncodeToString(raw)), nil
}

// NewNonce generates a random value to bind into the signed state.
func NewNonce() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
