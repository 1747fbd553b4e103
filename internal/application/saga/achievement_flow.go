// Package saga contains complex business processes that orchestrate
// multiple domain operations in a coordinated manner.
package saga

import (
	"context"
	"sync"
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/achievement"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/challenge"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT FLOW SAGA
// Flow: Snapshot State → Evaluate Locked Predicates → Unlock → Award XP →
// Persist Batch → Reload → Publish Events
//
// Unlocking is monotonic: a once-unlocked achievement is never re-evaluated
// or re-locked, even if later state would fail the predicate.
// ══════════════════════════════════════════════════════════════════════════════

// AchievementCheckResult describes one invocation of the flow.
type AchievementCheckResult struct {
	// Evaluated is the number of locked achievements that were checked.
	Evaluated int

	// Unlocked lists achievements unlocked by this invocation.
	Unlocked []achievement.Achievement

	// RewardTotal is the sum of XP paid out by this invocation.
	RewardTotal int

	// CheckedAt is when the evaluation ran.
	CheckedAt time.Time
}

// AchievementFlow evaluates unlock predicates against the current
// ledger/session/challenge snapshot and unlocks qualifying achievements.
type AchievementFlow struct {
	mu sync.Mutex

	store      achievement.Store
	sessions   game.SessionLog
	challenges challenge.Store
	ledger     *ledger.Ledger
	bus        shared.EventPublisher
	logger     *logger.Logger
	now        func() time.Time

	// In-memory achievement list, reloaded from storage after every batch
	// of unlocks.
	achievements []achievement.Achievement
	loaded       bool
}

// AchievementFlowConfig contains the flow dependencies.
type AchievementFlowConfig struct {
	Store      achievement.Store
	Sessions   game.SessionLog
	Challenges challenge.Store
	Ledger     *ledger.Ledger
	Publisher  shared.EventPublisher
	Logger     *logger.Logger
	Now        func() time.Time
}

// NewAchievementFlow creates an AchievementFlow.
func NewAchievementFlow(cfg AchievementFlowConfig) *AchievementFlow {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &AchievementFlow{
		store:      cfg.Store,
		sessions:   cfg.Sessions,
		challenges: cfg.Challenges,
		ledger:     cfg.Ledger,
		bus:        cfg.Publisher,
		logger:     cfg.Logger.With(logger.Component("achievement_flow")),
		now:        cfg.Now,
	}
}

// Achievements returns the current achievement list, loading it on first use.
func (f *AchievementFlow) Achievements(ctx context.Context) []achievement.Achievement {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoadedLocked(ctx)

	out := make([]achievement.Achievement, len(f.achievements))
	copy(out, f.achievements)
	return out
}

// CheckAchievements evaluates every still-locked achievement against the
// latest state. All qualifying achievements in one invocation are unlocked
// together, persisted as a batch, and the in-memory list is reloaded from
// storage afterwards.
func (f *AchievementFlow) CheckAchievements(ctx context.Context) AchievementCheckResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoadedLocked(ctx)

	snapshot := f.snapshot(ctx)
	now := f.now()

	result := AchievementCheckResult{CheckedAt: now}

	updated := make([]achievement.Achievement, len(f.achievements))
	copy(updated, f.achievements)

	for i := range updated {
		if updated[i].IsUnlocked {
			continue
		}
		result.Evaluated++

		if !updated[i].Requirement.SatisfiedBy(snapshot) {
			continue
		}

		updated[i].Unlock(now)
		result.Unlocked = append(result.Unlocked, updated[i])
		result.RewardTotal += updated[i].Reward
	}

	if len(result.Unlocked) == 0 {
		return result
	}

	if err := f.store.Save(ctx, updated); err != nil {
		f.logger.Error("achievement batch save failed", logger.Err(err))
	}

	for _, a := range result.Unlocked {
		f.ledger.AddExperience(ctx, a.Reward, ledger.SourceAchievement, a.ID)

		f.logger.Info("achievement unlocked",
			logger.AchievementID(a.ID),
			logger.String("name", a.Name),
			logger.XPAmount(a.Reward))

		f.publish(shared.AchievementUnlockedEvent{
			BaseEvent: shared.NewBaseEvent(shared.EventAchievementUnlocked, a.ID),
			Name:      a.Name,
			Reward:    a.Reward,
		})
	}

	// Reload from storage so the in-memory list reflects what was persisted.
	f.reloadLocked(ctx)

	return result
}

// RecentlyUnlocked returns up to limit unlocked achievements, newest first.
func (f *AchievementFlow) RecentlyUnlocked(ctx context.Context, limit int) []achievement.Achievement {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoadedLocked(ctx)

	unlocked := make([]achievement.Achievement, 0)
	for _, a := range f.achievements {
		if a.IsUnlocked && a.UnlockedDate != nil {
			unlocked = append(unlocked, a)
		}
	}
	// Insertion sort by unlock date, newest first; the list is tiny.
	for i := 1; i < len(unlocked); i++ {
		for j := i; j > 0 && unlocked[j].UnlockedDate.After(*unlocked[j-1].UnlockedDate); j-- {
			unlocked[j], unlocked[j-1] = unlocked[j-1], unlocked[j]
		}
	}
	if limit > 0 && len(unlocked) > limit {
		unlocked = unlocked[:limit]
	}
	return unlocked
}

// snapshot gathers the state achievements are evaluated against.
func (f *AchievementFlow) snapshot(ctx context.Context) achievement.Snapshot {
	rec := f.ledger.Snapshot()

	perfect := 0
	sessions, err := f.sessions.Load(ctx)
	if err != nil {
		f.logger.Warn("session load failed", logger.Err(err))
	}
	for _, s := range sessions {
		if s.IsPerfect() {
			perfect++
		}
	}

	completed := 0
	challenges, err := f.challenges.Load(ctx)
	if err != nil {
		f.logger.Warn("challenge load failed", logger.Err(err))
	}
	for _, c := range challenges {
		if c.IsCompleted {
			completed++
		}
	}

	return achievement.Snapshot{
		Progress:            &rec,
		PerfectSessions:     perfect,
		CompletedChallenges: completed,
	}
}

func (f *AchievementFlow) ensureLoadedLocked(ctx context.Context) {
	if f.loaded {
		return
	}
	f.reloadLocked(ctx)
	f.loaded = true
}

func (f *AchievementFlow) reloadLocked(ctx context.Context) {
	achievements, err := f.store.Load(ctx)
	if err != nil {
		f.logger.Warn("achievement load failed, using seed catalog", logger.Err(err))
		achievements = achievement.SeedCatalog()
	}
	f.achievements = achievements
}

func (f *AchievementFlow) publish(event shared.Event) {
	if f.bus == nil {
		return
	}
	if err := f.bus.Publish(event); err != nil {
		f.logger.Warn("event publish failed",
			logger.String("event", string(event.EventType())), logger.Err(err))
	}
}
