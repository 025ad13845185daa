package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lifeexplorer230/mafclubscore-sub001/internal/api/http"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/api/http/handlers"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/auth"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/config"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/events"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/observability"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/persistence"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/repository"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/service"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/worker"
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

	// The migration mode is resolved exactly once; changing it requires a
	// restart so no request can flip auth policy mid-flight.
	mode := auth.ParseMigrationMode(cfg.Auth.MigrationMode)
	logger.Info("auth migration mode resolved", zap.String("mode", string(mode)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pg.PoolHandle())

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), cfg.Auth.TokenVersion)
	legacy := auth.NewLegacyValidator(cfg.Auth.LegacySecret)
	gateway := auth.NewGateway(mode, tokens, legacy)
	verifier := auth.NewCredentialVerifier(userRepo, cfg.Auth.StoreTimeout())

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(redis.Client, dispatcher, logger)
	worker.StartAuditWorker(auditService)

	throttle := service.NewLoginThrottle(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)
	authService := service.NewAuthService(service.AuthDependencies{
		Verifier:   verifier,
		Tokens:     tokens,
		Throttle:   throttle,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authMiddleware := auth.NewMiddleware(gateway, logger, metrics, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Session:        handlers.NewSessionHandler(),
		Audit:          handlers.NewAuditHandler(auditService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
