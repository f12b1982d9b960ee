package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/roseyco/agency-portal/internal/api"
	"github.com/roseyco/agency-portal/internal/core/ports"
	"github.com/roseyco/agency-portal/internal/core/service"
	"github.com/roseyco/agency-portal/internal/infrastructure/db/mongo"
	"github.com/roseyco/agency-portal/internal/infrastructure/fixtures"
	"github.com/roseyco/agency-portal/internal/infrastructure/queue"
	"github.com/roseyco/agency-portal/internal/infrastructure/storage/memory"
	"github.com/roseyco/agency-portal/internal/infrastructure/storage/redis"
	"github.com/roseyco/agency-portal/internal/pkg/config"
	"github.com/roseyco/agency-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	var (
		stores ports.StoreFactory
		rdb    goredis.UniversalClient
	)
	if cfg.UsesRedis() {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		stores = redis.NewContextStore(client, "", cfg.Redis.KeyTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("context storage: redis")
	} else {
		stores = memory.NewStore()
		log.Warn().Msg("context storage: memory, sessions will not survive a restart")
	}

	var db *mongodriver.Database
	if cfg.UsesMongo() {
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	}

	auth, err := buildAuthenticator(ctx, db)
	if err != nil {
		return err
	}

	// --- Audit trail ---
	var eventRepo ports.SessionEventRepository
	if cfg.Audit.Sink == config.AuditSinkMongo {
		repo := mongo.NewSessionEventRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		eventRepo = repo
	}
	recorder := service.NewAuditService(eventRepo, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, recorder, logger.Component("dispatcher"))

	// Workers outlive the server so events published during shutdown still land.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	dispatcher.Start(dispatchCtx)

	// --- Sessions and HTTP ---
	registry := service.NewProviderRegistry(stores, auth, service.RegistryOptions{
		Size:         cfg.Session.RegistrySize,
		IdleTTL:      cfg.Session.IdleTTL,
		LoginTimeout: cfg.Auth.LoginTimeout,
		Events:       dispatcher,
		Logger:       logger.Component("session"),
	})

	e := api.NewRouter(api.Dependencies{
		Providers:     registry,
		Workspace:     service.NewWorkspaceService(fixtures.NewCatalog()),
		Mongo:         db,
		Redis:         rdb,
		Logger:        logger.Component("http"),
		ContextSecret: cfg.ContextSecret,
		CookieSecure:  cfg.Session.CookieSecure,
		RestoreWait:   cfg.Session.RestoreWait,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("auth_mode", cfg.Auth.Mode).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)

		stopDispatch()
		dispatcher.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func buildAuthenticator(ctx context.Context, db *mongodriver.Database) (ports.Authenticator, error) {
	if cfg.Auth.Mode != config.AuthModeAccounts {
		return service.NewMockAuthenticator(cfg.Auth.LoginDelay), nil
	}

	repo := mongo.NewAccountRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return service.NewAccountAuthenticator(repo), nil
}
