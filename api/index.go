package handler

import (
	"net/http"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/di"
	"github.com/Suya678/Surf/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
