package command

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/challenge"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHALLENGE ENGINE
// Manages the single active daily challenge. Per day the state moves
// absent → active,incomplete → active,completed. Generation is idempotent
// and completion pays out exactly once.
// ══════════════════════════════════════════════════════════════════════════════

// ChallengeEngine generates today's challenge when none exists and
// completes it when a qualifying session finishes.
type ChallengeEngine struct {
	mu sync.Mutex

	store   challenge.Store
	catalog *game.Catalog
	ledger  *ledger.Ledger
	bus     shared.EventPublisher
	logger  *logger.Logger
	now     func() time.Time
	intN    func(n int) int
}

// ChallengeEngineConfig contains the engine dependencies.
type ChallengeEngineConfig struct {
	Store     challenge.Store
	Catalog   *game.Catalog
	Ledger    *ledger.Ledger
	Publisher shared.EventPublisher
	Logger    *logger.Logger

	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time

	// IntN overrides the random source (tests). Defaults to rand.IntN.
	IntN func(n int) int
}

// NewChallengeEngine creates a ChallengeEngine.
func NewChallengeEngine(cfg ChallengeEngineConfig) *ChallengeEngine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IntN == nil {
		cfg.IntN = rand.Intn
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &ChallengeEngine{
		store:   cfg.Store,
		catalog: cfg.Catalog,
		ledger:  cfg.Ledger,
		bus:     cfg.Publisher,
		logger:  cfg.Logger.With(logger.Component("challenge_engine")),
		now:     cfg.Now,
		intN:    cfg.IntN,
	}
}

// GenerateTodayChallengeIfNeeded creates today's challenge when none of
// the stored challenges fall on the current calendar day. Idempotent:
// calling it again the same day is a no-op.
func (e *ChallengeEngine) GenerateTodayChallengeIfNeeded(ctx context.Context) (*challenge.DailyChallenge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	challenges := e.load(ctx)
	now := e.now()

	for i := range challenges {
		if challenges[i].IsActiveOn(now) {
			c := challenges[i]
			return &c, nil
		}
	}

	games := e.catalog.Games()
	if len(games) == 0 {
		return nil, shared.ErrGameNotFound
	}
	g := games[e.intN(len(games))]
	if len(g.DifficultyLevels) == 0 {
		return nil, shared.ErrDifficultyNotFound
	}
	d := g.DifficultyLevels[e.intN(len(g.DifficultyLevels))]

	c := challenge.DailyChallenge{
		ID:           uuid.NewString(),
		Date:         now,
		GameID:       g.ID,
		DifficultyID: d.ID,
		TargetScore:  d.TargetScore,
		Reward:       d.Level * challenge.RewardPerDifficultyLevel,
	}

	challenges = append(challenges, c)
	if err := e.store.Save(ctx, challenges); err != nil {
		e.logger.Error("challenge save failed", logger.ChallengeID(c.ID), logger.Err(err))
	}

	e.logger.Info("daily challenge generated",
		logger.ChallengeID(c.ID),
		logger.GameID(c.GameID),
		logger.Int("target_score", c.TargetScore),
		logger.XPAmount(c.Reward))

	e.publish(shared.ChallengeGeneratedEvent{
		BaseEvent:   shared.NewBaseEvent(shared.EventChallengeGenerated, c.ID),
		GameID:      c.GameID,
		TargetScore: c.TargetScore,
		Reward:      c.Reward,
	})

	return &c, nil
}

// TodayChallenge returns today's challenge, or nil when none exists yet.
func (e *ChallengeEngine) TodayChallenge(ctx context.Context) *challenge.DailyChallenge {
	e.mu.Lock()
	defer e.mu.Unlock()

	challenges := e.load(ctx)
	now := e.now()
	for i := range challenges {
		if challenges[i].IsActiveOn(now) {
			c := challenges[i]
			return &c
		}
	}
	return nil
}

// History returns every stored challenge, oldest first.
func (e *ChallengeEngine) History(ctx context.Context) []challenge.DailyChallenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load(ctx)
}

// CheckCompletion completes today's challenge when the finishing game
// matches and the score reaches the target. Anything else is a no-op:
// no challenge today, wrong game, already completed, or score too low.
// On completion the reward is paid out through the ledger exactly once.
func (e *ChallengeEngine) CheckCompletion(ctx context.Context, gameID string, score int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	challenges := e.load(ctx)
	now := e.now()

	idx := -1
	for i := range challenges {
		if challenges[i].IsActiveOn(now) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	c := &challenges[idx]
	if c.GameID != gameID || c.IsCompleted || score < c.TargetScore {
		return
	}

	c.Complete(now)
	if err := e.store.Save(ctx, challenges); err != nil {
		e.logger.Error("challenge save failed", logger.ChallengeID(c.ID), logger.Err(err))
	}

	e.ledger.AddExperience(ctx, c.Reward, ledger.SourceChallenge, c.ID)

	e.logger.Info("daily challenge completed",
		logger.ChallengeID(c.ID),
		logger.GameID(gameID),
		logger.Score(score),
		logger.XPAmount(c.Reward))

	e.publish(shared.ChallengeCompletedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventChallengeCompleted, c.ID),
		GameID:    gameID,
		Score:     score,
		Reward:    c.Reward,
	})
}

// load reads the challenge history, degrading to an empty list.
func (e *ChallengeEngine) load(ctx context.Context) []challenge.DailyChallenge {
	challenges, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Warn("challenge load failed", logger.Err(err))
		return nil
	}
	return challenges
}

func (e *ChallengeEngine) publish(event shared.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(event); err != nil {
		e.logger.Warn("event publish failed",
			logger.String("event", string(event.EventType())), logger.Err(err))
	}
}

var _ ChallengeChecker = (*ChallengeEngine)(nil)
