package main

import (
	"github.com/abraxas-iag/gateway/pkg/ascontainer"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/abraxas-iag/gateway/pkg/webx"
)

func main() {
	cfg := config.LoadAuthServerConfig()

	logx.Info("starting IAG authorization server")

	container, err := ascontainer.New(ascontainer.Deps{Cfg: cfg})
	if err != nil {
		logx.WithError(err).Fatal("failed to initialize authorization server")
	}
	defer container.Cleanup()

	app := webx.NewApp(webx.AppConfig{Name: "iag-authserver", Debug: cfg.DebugEnabled})
	container.Handlers.RegisterRoutes(app)

	webx.Serve(app, ":"+cfg.Port)
}
