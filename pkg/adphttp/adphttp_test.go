package adphttp

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/abraxas-iag/gateway/pkg/adp"
	"github.com/abraxas-iag/gateway/pkg/adpinfra"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func testErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(fiber.Map{"error": e.Code})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
}

func newTestApp(t *testing.T, cfg config.AuthorizerConfig) (*fiber.App, *Handlers) {
	t.Helper()
	store, err := adpinfra.OpenBoltDelegationStore(filepath.Join(t.TempDir(), "adp.db"))
	if err != nil {
		t.Fatalf("OpenBoltDelegationStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := &Handlers{Cfg: cfg, Store: store, Audit: NoopAuditSink{}}
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	h.RegisterRoutes(app)
	return app, h
}

func signedDelegationEnvelope(t *testing.T) (jws string, jwk adp.PublicJWK) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generating ed25519 key: %v", err)
	}
	notAfter := time.Now().Add(time.Hour).Unix()
	claims := adp.DelegationClaims{
		Subject:  "sub-1",
		AgentID:  "agent-1",
		ToolID:   "mcp.echo",
		Scopes:   []string{"echo:read"},
		NotAfter: &notAfter,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(priv)
	if err != nil {
		t.Fatalf("signing envelope: %v", err)
	}
	return signed, adp.PublicJWK{Kty: "OKP", Crv: "Ed25519", X: base64.RawURLEncoding.EncodeToString(pub)}
}

func TestPostDelegationThenListRoundTrip(t *testing.T) {
	app, _ := newTestApp(t, config.AuthorizerConfig{})
	jws, jwk := signedDelegationEnvelope(t)

	body, _ := json.Marshal(map[string]any{"jws": jws, "public_jwk": jwk})
	req := httptest.NewRequest("POST", "/delegations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /delegations: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	listReq := httptest.NewRequest("GET", "/delegations", nil)
	listResp, err := app.Test(listReq)
	if err != nil {
		t.Fatalf("GET /delegations: %v", err)
	}
	var delegations []adp.Delegation
	if err := json.NewDecoder(listResp.Body).Decode(&delegations); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if len(delegations) != 1 {
		t.Fatalf("expected 1 delegation after posting one, got %d", len(delegations))
	}
}

func TestPostDelegationRejectsBadSignature(t *testing.T) {
	app, _ := newTestApp(t, config.AuthorizerConfig{})
	jws, _ := signedDelegationEnvelope(t)
	_, wrongJWK := signedDelegationEnvelope(t)

	body, _ := json.Marshal(map[string]any{"jws": jws, "public_jwk": wrongJWK})
	req := httptest.NewRequest("POST", "/delegations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /delegations: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a signature that doesn't match the supplied key", resp.StatusCode)
	}
}

func TestPostEvaluateStrictDenyWithoutDelegation(t *testing.T) {
	app, _ := newTestApp(t, config.AuthorizerConfig{DemoMode: false, DefaultTTL: 900})

	body, _ := json.Marshal(map[string]any{
		"subject": "sub-1", "agent_id": "agent-1", "tool_id": "mcp.echo",
		"requested_scopes": []string{"echo:read"},
	})
	req := httptest.NewRequest("POST", "/evaluate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /evaluate: %v", err)
	}
	var out evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Allow {
		t.Fatal("expected deny when no delegation exists and demo mode is off")
	}
}

func TestPostEvaluateAllowsWithStoredDelegation(t *testing.T) {
	app, h := newTestApp(t, config.AuthorizerConfig{DemoMode: false, DefaultTTL: 900})
	if err := h.Store.Upsert(adp.Delegation{
		Subject: "sub-1", AgentID: "agent-1", ToolID: "mcp.echo",
		Scopes: []string{"echo:read"}, NotAfter: time.Now().Add(time.Hour).Unix(),
	}); err != nil {
		t.Fatalf("seeding delegation: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"subject": "sub-1", "agent_id": "agent-1", "tool_id": "mcp.echo",
		"requested_scopes": []string{"echo:read"},
	})
	req := httptest.NewRequest("POST", "/evaluate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /evaluate: %v", err)
	}
	var out evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !out.Allow {
		t.Fatal("expected allow when a covering delegation is on file")
	}
	if out.Obligations["ttl"].(float64) != 900 {
		t.Errorf("expected ttl obligation 900, got %v", out.Obligations["ttl"])
	}
}

func TestPostConsentRequiresExplicitWithoutDelegation(t *testing.T) {
	app, _ := newTestApp(t, config.AuthorizerConfig{})

	body, _ := json.Marshal(map[string]any{
		"subject": "sub-1", "agent_id": "agent-1", "tool_id": "mcp.pay",
		"scopes": []string{"payments:charge"}, "explicit": false,
	})
	req := httptest.NewRequest("POST", "/consent", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /consent: %v", err)
	}
	var out consentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Allow || out.Reason != "explicit_required" {
		t.Fatalf("expected explicit_required denial, got %+v", out)
	}
}
