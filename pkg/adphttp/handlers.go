// Package adphttp wires the Authorizer's fiber routes to the delegation
// store and policy evaluation logic in pkg/adp.
package adphttp

import (
	"context"
	"time"

	"github.com/abraxas-iag/gateway/pkg/adp"
	"github.com/abraxas-iag/gateway/pkg/adpinfra"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/gofiber/fiber/v2"
)

// AuditSink records accepted delegation envelopes. NoopAuditSink is used
// when ADP_AUDIT_DSN is unset.
type AuditSink interface {
	Record(ctx context.Context, d adp.Delegation) error
}

type NoopAuditSink struct{}

func (NoopAuditSink) Record(context.Context, adp.Delegation) error { return nil }

// Handlers holds every dependency the Authorizer's HTTP surface needs.
type Handlers struct {
	Cfg   config.AuthorizerConfig
	Store *adpinfra.BoltDelegationStore
	Audit AuditSink
}

func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Post("/delegations", h.PostDelegation)
	app.Get("/delegations", h.ListDelegations)
	app.Post("/evaluate", h.PostEvaluate)
	app.Post("/consent", h.PostConsent)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "iag-authorizer"})
}

func nowUnix() int64 { return time.Now().Unix() }
