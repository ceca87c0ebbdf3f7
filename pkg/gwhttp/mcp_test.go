package gwhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/errx"
	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
	"github.com/abraxas-iag/gateway/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

func testErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(fiber.Map{"error": e.Code})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
}

// newFakeRS stands in for the resource server: echo always succeeds,
// pay always succeeds unless the wallet token header is missing.
func newFakeRS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "echo": r.URL.Query().Get("msg")})
	})
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "tickets": []string{"tix-1"}})
	})
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Wallet-PM-Token") != "pm-demo-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "succeeded"})
	})
	return httptest.NewServer(mux)
}

func newTestGateway(t *testing.T, rsURL string) (*fiber.App, *Handlers) {
	t.Helper()
	sessions := gwinfra.NewSessionStore()
	h := &Handlers{
		Cfg: config.GatewayConfig{
			WalletPMToken: "pm-demo-token",
			DebugEnabled:  true,
		},
		Sessions: sessions,
		Proxy:    gwinfra.NewToolProxy(),
	}
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	h.RegisterRoutes(app)
	return app, h
}

func insertSession(sessions *gwinfra.SessionStore, sid, upstream, scope string, ob gwcore.Obligations) {
	sessions.Insert(&gwcore.Session{
		SID:             kernel.NewSessionID(sid),
		RequestedScopes: []string{scope},
		Upstream:        upstream,
		AccessToken:     "tok-" + sid,
		Used:            true,
		ExpiresAt:       time.Now().Add(time.Hour),
		ObtainedAt:      time.Now(),
		Obligations:     ob,
		ObligationsIssued: time.Now(),
	})
}

// Scenario: happy path echo call succeeds end to end through the proxy.
func TestScenarioHappyEcho(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)
	insertSession(h.Sessions, "s1", rs.URL, "echo:read", gwcore.Obligations{})

	req := httptest.NewRequest("GET", "/mcp/echo?msg=hello", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

// Scenario: scope segregation — a session scoped to payments must never
// serve a tickets call, even though both live on the same gateway.
func TestScenarioScopeSegregation(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)
	insertSession(h.Sessions, "pay-sess", rs.URL, "payments:charge", gwcore.Obligations{})

	req := httptest.NewRequest("GET", "/mcp/tickets", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 login_required (no tickets-scoped session exists)", resp.StatusCode)
	}
}

// Scenario: a payment under the obligation's amount cap succeeds.
func TestScenarioAmountCapAllows(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)
	insertSession(h.Sessions, "pay-sess", rs.URL, "payments:charge", gwcore.Obligations{
		HasMaxAmountCents: true, MaxAmountCents: 5000,
	})

	req := httptest.NewRequest("POST", "/mcp/pay?orderId=ord-1&amount_cents=2000&merchant_id=mcp-tix", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 for a payment under the cap", resp.StatusCode)
	}
}

// Scenario: a payment exceeding the obligation's amount cap is rejected
// before ever reaching the upstream resource server.
func TestScenarioAmountCapRejects(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)
	insertSession(h.Sessions, "pay-sess", rs.URL, "payments:charge", gwcore.Obligations{
		HasMaxAmountCents: true, MaxAmountCents: 1000,
	})

	req := httptest.NewRequest("POST", "/mcp/pay?orderId=ord-1&amount_cents=5000&merchant_id=mcp-tix", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403 obligation violation", resp.StatusCode)
	}
}

// Scenario: a merchant outside the obligation's allowlist is rejected.
func TestScenarioMerchantAllowlistRejects(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)
	insertSession(h.Sessions, "pay-sess", rs.URL, "payments:charge", gwcore.Obligations{
		MerchantAllowlist: []string{"mcp-tix"},
	})

	req := httptest.NewRequest("POST", "/mcp/pay?orderId=ord-1&amount_cents=500&merchant_id=evil-shop", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403 for a disallowed merchant", resp.StatusCode)
	}
}

// Scenario: TTL expiry forces re-authentication and clears the token.
func TestScenarioTTLExpiryForcesReauth(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)

	sid := kernel.NewSessionID("pay-sess")
	h.Sessions.Insert(&gwcore.Session{
		SID:               sid,
		RequestedScopes:   []string{"payments:charge"},
		Upstream:          rs.URL,
		AccessToken:       "tok-pay-sess",
		Used:              true,
		ExpiresAt:         time.Now().Add(time.Hour),
		ObtainedAt:        time.Now(),
		Obligations:       gwcore.Obligations{TTLSeconds: 1},
		ObligationsIssued: time.Now().Add(-10 * time.Second),
	})

	req := httptest.NewRequest("POST", "/mcp/pay?orderId=ord-1&amount_cents=500&merchant_id=mcp-tix", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 ttl expired", resp.StatusCode)
	}

	sess, ok := h.Sessions.Get(sid)
	if !ok {
		t.Fatal("expected the session to still exist after ttl expiry")
	}
	if sess.AccessToken != "" {
		t.Error("expected TTL expiry to clear the session's access token")
	}
}

// Scenario: replaying a tool call against an already-cleared (expired)
// session is treated the same as no session at all — login required.
func TestScenarioReplayAfterClearRequiresLogin(t *testing.T) {
	rs := newFakeRS(t)
	defer rs.Close()
	app, h := newTestGateway(t, rs.URL)

	sid := kernel.NewSessionID("echo-sess")
	h.Sessions.Insert(&gwcore.Session{
		SID:             sid,
		RequestedScopes: []string{"echo:read"},
		Upstream:        rs.URL,
	})
	h.Sessions.Mutate(sid, func(s *gwcore.Session) { s.ClearToken() })

	req := httptest.NewRequest("GET", "/mcp/echo?msg=hi", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 login_required after the token is cleared", resp.StatusCode)
	}
}
