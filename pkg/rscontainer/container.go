// Package rscontainer is the Resource Server's composition root.
package rscontainer

import (
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/rs"
	"github.com/abraxas-iag/gateway/pkg/rshttp"
	"github.com/abraxas-iag/gateway/pkg/rsinfra"
)

type Deps struct {
	Cfg config.ResourceServerConfig
}

type Container struct {
	Cfg      config.ResourceServerConfig
	Handlers *rshttp.Handlers
}

// New wires a local JWT verifier when RS_JWT_SECRET is configured,
// otherwise an introspection client against the AS.
func New(deps Deps) *Container {
	var verifier rs.TokenVerifier
	if deps.Cfg.LocalJWTSecret != "" {
		verifier = rsinfra.NewLocalJWTVerifier(deps.Cfg.LocalJWTSecret)
	} else {
		verifier = rsinfra.NewIntrospectVerifier(deps.Cfg.IntrospectURL)
	}

	handlers := &rshttp.Handlers{Cfg: deps.Cfg, Verifier: verifier}
	return &Container{Cfg: deps.Cfg, Handlers: handlers}
}
