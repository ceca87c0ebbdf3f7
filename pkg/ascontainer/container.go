// Package ascontainer is the Authorization Server's composition root.
package ascontainer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/abraxas-iag/gateway/pkg/asrv"
	"github.com/abraxas-iag/gateway/pkg/asinfra"
	"github.com/abraxas-iag/gateway/pkg/ashttp"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"golang.org/x/crypto/hkdf"
)

type Deps struct {
	Cfg config.AuthServerConfig
}

type Container struct {
	Cfg      config.AuthServerConfig
	Clients  *asinfra.BoltClientStore
	Handlers *ashttp.Handlers
}

func New(deps Deps) (*Container, error) {
	clients, err := asinfra.OpenBoltClientStore(deps.Cfg.ClientDBPath)
	if err != nil {
		return nil, err
	}

	var codes asinfra.CodeStore
	if deps.Cfg.RedisAddr != "" {
		codes = asinfra.NewRedisCodeStore(deps.Cfg.RedisAddr)
	} else {
		logx.Warn("REDIS_ADDR unset, falling back to in-memory code store (single-process only)")
		codes = asinfra.NewMemoryCodeStore()
	}

	tokens := asrv.NewTokenService(deriveSigningKey(deps.Cfg.SigningSecret), deps.Cfg.TokenTTL, deps.Cfg.Issuer)

	handlers := &ashttp.Handlers{
		Cfg:     deps.Cfg,
		Codes:   codes,
		Clients: clients,
		Tokens:  tokens,
	}

	return &Container{Cfg: deps.Cfg, Clients: clients, Handlers: handlers}, nil
}

func (c *Container) Cleanup() {
	if c.Clients != nil {
		c.Clients.Close()
	}
}

// deriveSigningKey stretches the configured AS_SIGNING_SECRET into a
// fixed-length HMAC key via HKDF-SHA256, the same construction the
// delegation layer's key material would use, instead of signing directly
// with an operator-chosen passphrase.
func deriveSigningKey(secret string) string {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("iag-as-access-token"))
	out := make([]byte, 32)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return secret
	}
	return hex.EncodeToString(out)
}
