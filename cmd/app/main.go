package main

import (
	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/di"
	"github.com/Suya678/Surf/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
