// Package jobs contains implementations of scheduled jobs for QuickBrain
// Progress Hub.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/challenge"
)

// ══════════════════════════════════════════════════════════════════════════════
// GENERATE DAILY CHALLENGE JOB
// ══════════════════════════════════════════════════════════════════════════════

// ChallengeGenerator is the engine the job drives.
type ChallengeGenerator interface {
	GenerateTodayChallengeIfNeeded(ctx context.Context) (*challenge.DailyChallenge, error)
}

// GenerateDailyChallengeJob makes sure a challenge exists for the current
// day. Generation is idempotent, so the job is safe to run on every
// worker start as well as at midnight.
type GenerateDailyChallengeJob struct {
	generator ChallengeGenerator
	logger    *slog.Logger

	// Timeout bounds one generation run.
	Timeout time.Duration
}

// NewGenerateDailyChallengeJob creates the job.
func NewGenerateDailyChallengeJob(generator ChallengeGenerator, logger *slog.Logger) *GenerateDailyChallengeJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateDailyChallengeJob{
		generator: generator,
		logger:    logger.With(slog.String("job", "generate_daily_challenge")),
		Timeout:   30 * time.Second,
	}
}

// Name returns the unique job name.
func (j *GenerateDailyChallengeJob) Name() string {
	return "generate_daily_challenge"
}

// Description returns a human-readable description.
func (j *GenerateDailyChallengeJob) Description() string {
	return "Generates today's daily challenge if one does not exist yet"
}

// Run generates today's challenge when missing.
func (j *GenerateDailyChallengeJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.Timeout)
	defer cancel()

	ch, err := j.generator.GenerateTodayChallengeIfNeeded(ctx)
	if err != nil {
		return err
	}

	j.logger.Info("daily challenge ensured",
		slog.String("challenge_id", ch.ID),
		slog.String("game_id", ch.GameID),
		slog.Int("target_score", ch.TargetScore),
		slog.Int("reward", ch.Reward))
	return nil
}
