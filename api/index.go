package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/app"
	"storefront/config"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := config.NewLogger(cfg)
		if err != nil {
			logger = zap.NewNop()
		}

		application, initErr = app.Initialize(context.Background(), cfg, logger)
		if initErr != nil {
			logger.Error("failed to initialize application", zap.Error(initErr))
		}
	})
}

// Handler is the serverless entry point. Sessions live as long as the warm
// instance does.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	application.Router.ServeHTTP(w, r)
}
