package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"provider-dashboard/internal/adapters/auth/jwtsession"
	"provider-dashboard/internal/adapters/marketplace"
	"provider-dashboard/internal/config"
	"provider-dashboard/internal/platform/logger"
	"provider-dashboard/internal/router"
)

func main() {
	// .env opcional (dev); en deploy las vars vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	api, err := marketplace.NewClient(marketplace.Config{
		BaseURL: cfg.MarketplaceBaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatal("marketplace client", zap.Error(err))
	}

	r := router.NewRouter(router.Options{
		Verifier: jwtsession.NewVerifier(cfg.JWTSecret),
		API:      api,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Info("starting server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}
