// Package adpcontainer is the Authorizer's composition root.
package adpcontainer

import (
	"github.com/abraxas-iag/gateway/pkg/adphttp"
	"github.com/abraxas-iag/gateway/pkg/adpinfra"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/logx"
)

type Deps struct {
	Cfg config.AuthorizerConfig
}

type Container struct {
	Cfg      config.AuthorizerConfig
	Store    *adpinfra.BoltDelegationStore
	Audit    *adpinfra.AuditRepository
	Handlers *adphttp.Handlers
}

func New(deps Deps) (*Container, error) {
	store, err := adpinfra.OpenBoltDelegationStore(deps.Cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var audit adphttp.AuditSink = adphttp.NoopAuditSink{}
	var auditRepo *adpinfra.AuditRepository
	if deps.Cfg.AuditDSN != "" {
		auditRepo, err = adpinfra.OpenAuditRepository(deps.Cfg.AuditDSN)
		if err != nil {
			logx.WithError(err).Warn("delegation audit trail unavailable, continuing without it")
		} else {
			audit = auditRepo
		}
	}

	handlers := &adphttp.Handlers{
		Cfg:   deps.Cfg,
		Store: store,
		Audit: audit,
	}

	return &Container{Cfg: deps.Cfg, Store: store, Audit: auditRepo, Handlers: handlers}, nil
}

func (c *Container) Cleanup() {
	if c.Store != nil {
		c.Store.Close()
	}
	if c.Audit != nil {
		c.Audit.Close()
	}
}
