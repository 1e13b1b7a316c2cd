package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hashtagpe-console/internal/api"
	httptransport "github.com/spec-kit/hashtagpe-console/internal/api/http"
	"github.com/spec-kit/hashtagpe-console/internal/api/http/handlers"
	"github.com/spec-kit/hashtagpe-console/internal/channel"
	"github.com/spec-kit/hashtagpe-console/internal/config"
	"github.com/spec-kit/hashtagpe-console/internal/events"
	"github.com/spec-kit/hashtagpe-console/internal/observability"
	"github.com/spec-kit/hashtagpe-console/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store := newTokenStore(cfg, logger)

	apiClient := api.NewClient(cfg.API, store, logger)
	controller := session.NewController(store, apiClient, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	counters := channel.NewCounters()
	channels := channel.NewManager(cfg.Socket, dispatcher, counters, logger)

	// channel teardown/opening rides inside the session transition
	controller.Subscribe(channels.HandleTransition)

	controller.Initialize()

	if !controller.IsAuthenticated() && cfg.Login.Email != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout()+5*time.Second)
		claim, err := controller.Login(ctx, cfg.Login.Email, cfg.Login.Password)
		cancel()
		if err != nil {
			logger.Fatal("startup login failed", zap.Error(err))
		}
		logger.Info("logged in", zap.String("email", claim.Email), zap.String("role", string(claim.Role)))
	}

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version)
	statusHandler := handlers.NewStatusHandler(controller, channels, counters, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: healthHandler,
		Status: statusHandler,
	})

	go func() {
		if err := app.Listen(cfg.Status.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	if closer, ok := store.(interface{ Close() }); ok {
		closer.Close()
	}
}

func newTokenStore(cfg *config.Config, logger *zap.Logger) session.Store {
	switch cfg.Storage.Backend {
	case config.TokenStoreRedis:
		return session.NewRedisStore(cfg.Redis, cfg.Storage.TokenRedisKey, logger)
	default:
		return session.NewFileStore(cfg.Storage.TokenFilePath)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
