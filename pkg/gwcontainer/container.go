// Package gwcontainer is the gateway's composition root, wiring
// configuration into infrastructure adapters and finally into the HTTP
// handler layer, following the Deps/Container/New shape every service's
// composition root in this module shares.
package gwcontainer

import (
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/gwhttp"
	"github.com/abraxas-iag/gateway/pkg/gwinfra"
)

// Deps lets callers override infrastructure for tests; zero-value Deps
// makes New build everything from Cfg.
type Deps struct {
	Cfg config.GatewayConfig
}

// Container holds the fully wired gateway.
type Container struct {
	Cfg      config.GatewayConfig
	Sessions *gwinfra.SessionStore
	Handlers *gwhttp.Handlers
}

func New(deps Deps) *Container {
	sessions := gwinfra.NewSessionStore()
	discovery := gwinfra.NewDiscoveryClient(deps.Cfg.RSMetaFallback)
	adp := gwinfra.NewADPClient(deps.Cfg.ADPBase)
	registrar := gwinfra.NewClientRegistrar()
	proxy := gwinfra.NewToolProxy()

	handlers := &gwhttp.Handlers{
		Cfg:       deps.Cfg,
		Sessions:  sessions,
		Discovery: discovery,
		ADP:       adp,
		Registrar: registrar,
		Proxy:     proxy,
	}

	return &Container{
		Cfg:      deps.Cfg,
		Sessions: sessions,
		Handlers: handlers,
	}
}
