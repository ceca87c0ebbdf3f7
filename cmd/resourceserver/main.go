package main

import (
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/abraxas-iag/gateway/pkg/rscontainer"
	"github.com/abraxas-iag/gateway/pkg/webx"
)

func main() {
	cfg := config.LoadResourceServerConfig()

	logx.Info("starting IAG resource server")

	container := rscontainer.New(rscontainer.Deps{Cfg: cfg})

	app := webx.NewApp(webx.AppConfig{Name: "iag-resourceserver", Debug: cfg.DebugEnabled})
	container.Handlers.RegisterRoutes(app)

	webx.Serve(app, ":"+cfg.Port)
}
