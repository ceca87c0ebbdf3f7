package main

import (
	"github.com/abraxas-iag/gateway/pkg/adpcontainer"
	"github.com/abraxas-iag/gateway/pkg/config"
	"github.com/abraxas-iag/gateway/pkg/logx"
	"github.com/abraxas-iag/gateway/pkg/webx"
)

func main() {
	cfg := config.LoadAuthorizerConfig()

	logx.Info("starting IAG authorizer")

	container, err := adpcontainer.New(adpcontainer.Deps{Cfg: cfg})
	if err != nil {
		logx.Fatalf("failed to start authorizer: %v", err)
	}
	defer container.Cleanup()

	app := webx.NewApp(webx.AppConfig{Name: "iag-authorizer", Debug: cfg.DebugEnabled})
	container.Handlers.RegisterRoutes(app)

	webx.Serve(app, ":"+cfg.Port)
}
