package main

import (
	"jobtrack/commons/config"
	"jobtrack/commons/server"
	internalConfig "jobtrack/internal/config"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.WithLogger(config.ProvideFxLogger),
		internalConfig.Module(),
		fx.Invoke(func(*server.HTTPServer) {}),
	).Run()
}
