package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/adapters/document"
	"github.com/SscSPs/isp_bookkeeping_app/internal/adapters/messaging"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/handlers"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/SscSPs/isp_bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/isp_bookkeeping_app/internal/repositories"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// @title ISP Bookkeeping API
// @version 1.0
// @description Billing, cash book and reporting backend for a small internet service provider.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repositories.OpenStateRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open state store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := repo.Close(context.Background()); cerr != nil {
			logger.Error("Error closing state store", slog.String("error", cerr.Error()))
		}
	}()

	appState, err := state.Load(ctx, repo, logger)
	if err != nil {
		logger.Error("Failed to load application state", slog.String("error", err.Error()))
		return
	}

	ids, err := utils.NewSnowflakeIDGenerator(cfg.SnowflakeNode)
	if err != nil {
		logger.Error("Failed to create id generator", slog.String("error", err.Error()))
		return
	}

	serviceContainer := services.NewServiceContainer(
		cfg,
		appState,
		document.NewPDFRenderer(),
		messaging.NewWhatsAppLinkBuilder(),
		services.WithIDGenerator(ids),
	)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogHost, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		return
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store_driver", string(cfg.StoreDriver)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}
