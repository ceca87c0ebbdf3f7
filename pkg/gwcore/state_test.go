package gwcore

import (
	"testing"

	"github.com/abraxas-iag/gateway/pkg/kernel"
)

func TestSignVerifyStateRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	payload := StatePayload{
		SID:       kernel.NewSessionID("sid-123"),
		IAT:       1700000000,
		Audience:  "http://rs.example",
		Scope:     "echo:read",
		Nonce:     "nonce-abc",
		CtxDigest: "digest-xyz",
	}

	state, err := SignState(secret, payload)
	if err != nil {
		t.Fatalf("SignState: %v", err)
	}

	got, err := VerifyState(secret, state)
	if err != nil {
		t.Fatalf("VerifyState: %v", err)
	}
	if got != payload {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, payload)
	}
}

func TestVerifyStateBadSignature(t *testing.T) {
	secret := []byte("test-secret")
	payload := StatePayload{SID: kernel.NewSessionID("sid-123")}
	state, err := SignState(secret, payload)
	if err != nil {
		t.Fatalf("SignState: %v", err)
	}

	_, err = VerifyState([]byte("wrong-secret"), state)
	if err == nil {
		t.Fatal("expected error for tampered secret, got nil")
	}
	if e := ErrRegistry; e == nil {
		t.Fatal("registry missing")
	}
}

func TestVerifyStateMalformed(t *testing.T) {
	_, err := VerifyState([]byte("secret"), "not-a-valid-state-token")
	if err == nil {
		t.Fatal("expected malformed state error")
	}
}

func TestGeneratePKCEChallengeMatchesVerifier(t *testing.T) {
	p, err := GeneratePKCE()
	if err != nil {
		t.Fatalf("GeneratePKCE: %v", err)
	}
	if p.Verifier == "" || p.Challenge == "" {
		t.Fatal("expected non-empty verifier and challenge")
	}
	if p.Verifier == p.Challenge {
		t.Fatal("challenge should differ from verifier")
	}
}
