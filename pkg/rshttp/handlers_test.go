package rshttp

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/errx"
	"github.com/abraxas-iag/gateway/pkg/rs"
	"github.com/gofiber/fiber/v2"
)

// fakeVerifier lets tests control exactly what RequireToken sees without
// standing up a real AS or signing real JWTs.
type fakeVerifier struct {
	info rs.TokenInfo
	err  error
}

func (f fakeVerifier) Verify(_ context.Context, token string) (rs.TokenInfo, error) {
	return f.info, f.err
}

func testErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(fiber.Map{"error": e.Code})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
}

func newTestApp(verifier rs.TokenVerifier) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	h := &Handlers{
		Cfg: config.ResourceServerConfig{
			Resource:    "http://localhost:8084",
			ExpectedAud: "http://localhost:8084",
		},
		Verifier: verifier,
	}
	h.RegisterRoutes(app)
	return app
}

func TestEchoRejectsMissingBearer(t *testing.T) {
	app := newTestApp(fakeVerifier{})
	req := httptest.NewRequest("GET", "/mcp/echo?msg=hi", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if auth := resp.Header.Get("WWW-Authenticate"); !strings.Contains(auth, "resource_metadata=") {
		t.Errorf("WWW-Authenticate header missing resource_metadata, got %q", auth)
	}
}

func TestEchoRejectsWrongAudience(t *testing.T) {
	app := newTestApp(fakeVerifier{info: rs.TokenInfo{
		Active: true, Audience: "http://other-rs.example.com", Scopes: []string{"echo:read"},
	}})
	req := httptest.NewRequest("GET", "/mcp/echo?msg=hi", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestEchoRejectsInsufficientScope(t *testing.T) {
	app := newTestApp(fakeVerifier{info: rs.TokenInfo{
		Active: true, Audience: "http://localhost:8084", Scopes: []string{"tickets:read"},
	}})
	req := httptest.NewRequest("GET", "/mcp/echo?msg=hi", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403 for wrong scope", resp.StatusCode)
	}
}

func TestEchoSucceedsWithValidToken(t *testing.T) {
	app := newTestApp(fakeVerifier{info: rs.TokenInfo{
		Active: true, Subject: "client-1", Scope: "echo:read",
		Audience: "http://localhost:8084", Scopes: []string{"echo:read"},
	}})
	req := httptest.NewRequest("GET", "/mcp/echo?msg=hello", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPayRejectsMissingWalletToken(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	h := &Handlers{
		Cfg: config.ResourceServerConfig{
			Resource:      "http://localhost:8084",
			ExpectedAud:   "http://localhost:8084",
			WalletPMToken: "wallet-secret",
		},
		Verifier: fakeVerifier{info: rs.TokenInfo{
			Active: true, Audience: "http://localhost:8084", Scopes: []string{"payments:charge"},
		}},
	}
	h.RegisterRoutes(app)

	req := httptest.NewRequest("POST", "/orders/ord-1/pay", strings.NewReader(`{"amount_cents":500}`))
	req.Header.Set("Authorization", "Bearer sometoken")
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403 when the wallet payment-method token is missing", resp.StatusCode)
	}
}

func TestMetadataReportsConfiguredResource(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	h := &Handlers{
		Cfg: config.ResourceServerConfig{
			ExpectedAud:    "http://localhost:8084",
			AuthServerMeta: "http://localhost:8083/.well-known/oauth-authorization-server",
			IntrospectURL:  "http://localhost:8083/introspect",
		},
	}
	h.RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/.well-known/oauth-protected-resource", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
