// Package scheduler implements background job scheduling for QuickBrain
// Progress Hub. It wraps a cron runner with job registration, panic
// recovery, and per-job run tracking, so worker binaries only declare
// jobs and their cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOB INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Job defines the interface that all scheduled jobs must implement.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Run executes the job.
	// The context is cancelled when the scheduler is stopping.
	Run(ctx context.Context) error

	// Description returns a human-readable description of the job.
	Description() string
}

// JobResult contains the result of a job execution.
type JobResult struct {
	JobName     string
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Success     bool
	Error       error
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULER
// ══════════════════════════════════════════════════════════════════════════════

// Config contains configuration for the Scheduler.
type Config struct {
	// Logger for structured logging.
	Logger *slog.Logger

	// Timezone for schedule calculations (default: UTC).
	Timezone *time.Location
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logger:   slog.Default(),
		Timezone: time.UTC,
	}
}

// Scheduler manages and executes scheduled jobs on cron expressions.
type Scheduler struct {
	mu sync.RWMutex

	cron   *cron.Cron
	logger *slog.Logger

	jobs     map[string]cron.EntryID
	lastRuns map[string]JobResult
	running  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler with the given configuration.
func New(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Timezone),
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
		logger:   cfg.Logger.With(slog.String("component", "scheduler")),
		jobs:     make(map[string]cron.EntryID),
		lastRuns: make(map[string]JobResult),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register adds a job with a cron expression ("0 0 * * *" runs at
// midnight in the scheduler timezone).
func (s *Scheduler) Register(job Job, spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("scheduler: job %q already registered", job.Name())
	}

	id, err := s.cron.AddFunc(spec, func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid cron spec %q for job %q: %w", spec, job.Name(), err)
	}

	s.jobs[job.Name()] = id
	s.logger.Info("job registered",
		slog.String("job", job.Name()),
		slog.String("spec", spec),
		slog.String("description", job.Description()))
	return nil
}

// Start begins executing registered jobs. Non-blocking.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.jobs)))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunNow executes a registered job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) JobResult {
	return s.runJob(job)
}

// LastRun returns the most recent result for a job, if it has run.
func (s *Scheduler) LastRun(jobName string) (JobResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.lastRuns[jobName]
	return result, ok
}

func (s *Scheduler) runJob(job Job) JobResult {
	started := time.Now()
	s.logger.Info("job starting", slog.String("job", job.Name()))

	err := job.Run(s.ctx)

	result := JobResult{
		JobName:     job.Name(),
		StartedAt:   started,
		CompletedAt: time.Now(),
		Duration:    time.Since(started),
		Success:     err == nil,
		Error:       err,
	}

	s.mu.Lock()
	s.lastRuns[job.Name()] = result
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("job failed",
			slog.String("job", job.Name()),
			slog.Duration("duration", result.Duration),
			slog.String("error", err.Error()))
	} else {
		s.logger.Info("job completed",
			slog.String("job", job.Name()),
			slog.Duration("duration", result.Duration))
	}

	return result
}
