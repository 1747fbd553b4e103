// Package main is the entry point for the QuickBrain Progress Hub API
// server. It wires the storage collaborators, the progress engine, and
// the HTTP interface, then serves until interrupted.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: pure business logic without external dependencies
// - Application: use case orchestration (Commands/Queries/Sagas)
// - Infrastructure: storage, messaging, scheduling
// - Interface: HTTP endpoints for mini-game clients
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	// Application layer
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/command"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/eventhandler"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/query"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/saga"

	// Domain layer
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"

	// Infrastructure layer
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/messaging"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/persistence/postgres"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/persistence/redis"

	// Interface layer
	httpserver "github.com/quickbrain-hub/quickbrain-progress-hub/internal/interface/http"

	// Packages
	"github.com/quickbrain-hub/quickbrain-progress-hub/config"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/timeutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	timeutil.SetZone(cfg.Location())

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.Level),
		AddCaller: true,
	})
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{}))

	log.Info("starting quickbrain progress hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("timezone", cfg.App.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─────────────────────────────────────────────────────────────────────────
	// Storage collaborators
	// ─────────────────────────────────────────────────────────────────────────
	cache, err := redis.NewCache(ctx, redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer cache.Close()

	progressStore := redis.NewProgressStore(cache, log)
	sessionLog := redis.NewSessionLog(cache, log)
	achievementStore := redis.NewAchievementStore(cache, log)
	challengeStore := redis.NewChallengeStore(cache, log)
	counters := redis.NewDailyCounters(cache)

	pingers := []httpserver.NamedPinger{{Name: "redis", Pinger: cache}}

	// The session archive is optional. When PostgreSQL is unreachable the
	// engine still runs from the key-value store alone.
	var archive game.SessionArchive
	if cfg.Database.URL != "" {
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			log.Warn("session archive unavailable, continuing without it", logger.Err(err))
		} else {
			defer conn.Close()
			if cfg.Database.RunMigrations {
				if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}
			archive = postgres.NewSessionArchive(conn)
			pingers = append(pingers, httpserver.NamedPinger{Name: "postgres", Pinger: conn})
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Event bus
	// ─────────────────────────────────────────────────────────────────────────
	bus := messaging.NewInMemoryEventBus(slogger)
	defer bus.Close()

	if err := bus.Subscribe(shared.EventSessionRecorded,
		eventhandler.NewOnSessionRecordedHandler(counters, slogger)); err != nil {
		return fmt.Errorf("subscribe counters handler: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Application core
	// ─────────────────────────────────────────────────────────────────────────
	catalog := game.DefaultCatalog()

	led := ledger.New(ctx, ledger.Config{
		Store:     progressStore,
		Publisher: bus,
		Logger:    log,
	})

	challenges := command.NewChallengeEngine(command.ChallengeEngineConfig{
		Store:     challengeStore,
		Catalog:   catalog,
		Ledger:    led,
		Publisher: bus,
		Logger:    log,
	})

	recorder := command.NewSessionRecorder(command.SessionRecorderConfig{
		Catalog:   catalog,
		Log:       sessionLog,
		Archive:   archive,
		Ledger:    led,
		Challenge: challenges,
		Publisher: bus,
		Logger:    log,
	})

	achievements := saga.NewAchievementFlow(saga.AchievementFlowConfig{
		Store:      achievementStore,
		Sessions:   sessionLog,
		Challenges: challengeStore,
		Ledger:     led,
		Publisher:  bus,
		Logger:     log,
	})

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	server := httpserver.NewServer(httpserver.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
		EnableCORS:     cfg.Server.EnableCORS,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		APITokenHash:   cfg.Server.APITokenHash,
	}, httpserver.Dependencies{
		Recorder:               recorder,
		Challenges:             challenges,
		Achievements:           achievements,
		GetProgressHandler:     query.NewGetProgressHandler(led),
		GetAchievementsHandler: query.NewGetAchievementsHandler(achievements),
		GetStatisticsHandler:   query.NewGetStatisticsHandler(catalog, sessionLog, archive, log),
		Catalog:                catalog,
		Logger:                 log,
		Pingers:                pingers,
	})

	errCh := server.StartAsync()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
