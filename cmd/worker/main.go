// Package main is the entry point for the QuickBrain Progress Hub
// background worker. It runs scheduled jobs, currently the daily
// challenge generation at local midnight.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quickbrain-hub/quickbrain-progress-hub/config"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/command"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/messaging"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/persistence/redis"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/scheduler"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/infrastructure/scheduler/jobs"
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

	log.Info("starting quickbrain worker",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("timezone", cfg.App.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	bus := messaging.NewInMemoryEventBus(slogger)
	defer bus.Close()

	// The worker never records play, so it must not touch streak state or
	// the last-play date; those belong to the API server.
	led := ledger.New(ctx, ledger.Config{
		Store:             redis.NewProgressStore(cache, log),
		Publisher:         bus,
		Logger:            log,
		SkipStartupStreak: true,
	})

	challenges := command.NewChallengeEngine(command.ChallengeEngineConfig{
		Store:     redis.NewChallengeStore(cache, log),
		Catalog:   game.DefaultCatalog(),
		Ledger:    led,
		Publisher: bus,
		Logger:    log,
	})

	sched := scheduler.New(scheduler.Config{
		Logger:   slogger,
		Timezone: cfg.Location(),
	})

	challengeJob := jobs.NewGenerateDailyChallengeJob(challenges, slogger)
	if err := sched.Register(challengeJob, cfg.Scheduler.DailyChallengeSpec); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if cfg.Scheduler.RunOnStart {
		sched.RunNow(challengeJob)
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}
