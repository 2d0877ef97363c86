package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SirClappington/aso-backend/internal/api"
	"github.com/SirClappington/aso-backend/internal/config"
	"github.com/SirClappington/aso-backend/internal/logging"
	"github.com/SirClappington/aso-backend/internal/services"
	"github.com/SirClappington/aso-backend/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	// writeSlack covers the time spent outside the upstream call.
	writeSlack = 10 * time.Second
)

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		logger.Warn("Credentials not set, affected upstream calls will fail", zap.Strings("missing", missing))
	}

	gin.SetMode(cfg.GinMode)

	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	appTweak := services.NewAppTweakService(cfg, httpClient, logger)
	handlers := api.NewHandlers(
		services.NewAppStoreService(cfg, httpClient, logger),
		appTweak,
		appTweak,
		services.NewMetadataService(cfg, httpClient, logger),
		logger,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handlers, logger),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.UpstreamTimeout + writeSlack,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
