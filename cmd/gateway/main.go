package main

import (
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/gwcontainer"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/abraxas-iag/gateway/pkg/webx"
)

func main() {
	cfg := config.LoadGatewayConfig()

	logx.Info("starting IAG gateway")

	container := gwcontainer.New(gwcontainer.Deps{Cfg: cfg})

	app := webx.NewApp(webx.AppConfig{Name: "iag-gateway", CORSOrigins: cfg.CORSOrigins, Debug: cfg.DebugEnabled})
	container.Handlers.RegisterRoutes(app)

	webx.Serve(app, ":"+cfg.Port)
}
