package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/app"
	"storefront/config"
	_ "storefront/docs"
)

// @title Storefront Widget API
// @version 1.0
// @description Catalog, cart and checkout commands for the storefront widget.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg.LogSummary(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	go application.Sessions.Run(ctx, time.Minute)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: application.Router,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("swagger", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
