// Package ledger implements the progress ledger: the single writer of the
// per-user UserProgress record. It applies experience gains and level-up
// rollover, maintains daily streak continuity, and accumulates per-skill
// mastery from session performance.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// XPSource labels where an experience award came from, for events and logs.
type XPSource string

const (
	SourceSession     XPSource = "session"
	SourceChallenge   XPSource = "challenge"
	SourceAchievement XPSource = "achievement"
)

// Ledger owns the in-memory UserProgress record and persists it after
// every mutation. All mutations are serialized through one mutex - the
// core runs as a single logical actor.
//
// Persistence is fire-and-forget: a failed write is logged and the
// in-memory record stays authoritative until the next successful write.
type Ledger struct {
	mu sync.Mutex

	store  progress.Store
	bus    shared.EventPublisher
	logger *logger.Logger
	now    func() time.Time

	record *progress.UserProgress
}

// Config contains the ledger dependencies.
type Config struct {
	Store     progress.Store
	Publisher shared.EventPublisher
	Logger    *logger.Logger

	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time

	// SkipStartupStreak suppresses the launch-time streak update. Set by
	// background binaries: only a real play session or an interactive
	// launch may touch streak state or the last-play date.
	SkipStartupStreak bool
}

// New creates the ledger and loads the stored record, substituting zero
// defaults when nothing usable is stored. It then runs one streak update,
// mirroring app launch, unless SkipStartupStreak is set.
func New(ctx context.Context, cfg Config) *Ledger {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	l := &Ledger{
		store:  cfg.Store,
		bus:    cfg.Publisher,
		logger: cfg.Logger.With(logger.Component("ledger")),
		now:    cfg.Now,
	}

	rec, err := l.store.LoadProgress(ctx)
	if err != nil || rec == nil {
		if err != nil {
			l.logger.Warn("progress load failed, starting fresh", logger.Err(err))
		}
		rec = progress.NewUserProgress()
	}
	l.record = rec

	if !cfg.SkipStartupStreak {
		l.mu.Lock()
		l.updateStreakLocked(ctx)
		l.saveLocked(ctx)
		l.mu.Unlock()
	}

	return l
}

// Snapshot returns a copy of the current progress record.
func (l *Ledger) Snapshot() progress.UserProgress {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := *l.record
	out.Skills = make(map[game.CognitiveSkill]*progress.SkillLevel, len(l.record.Skills))
	for k, v := range l.record.Skills {
		sl := *v
		out.Skills[k] = &sl
	}
	return out
}

// AddExperience awards points to the ledger and persists the record.
// Points are non-negative; there are no error conditions.
func (l *Ledger) AddExperience(ctx context.Context, points int, source XPSource, sourceID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	oldLevel := l.record.CurrentLevel
	leveledUp := l.record.AddExperience(points)
	l.saveLocked(ctx)

	l.publish(shared.XPGainedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventXPGained, "user"),
		Points:    points,
		TotalXP:   l.record.ExperiencePoints,
		Level:     l.record.CurrentLevel,
		Source:    string(source),
		SourceID:  sourceID,
	})

	if leveledUp {
		l.logger.Info("level up",
			logger.Int("old_level", oldLevel),
			logger.Int("new_level", l.record.CurrentLevel))
		l.publish(shared.LevelUpEvent{
			BaseEvent: shared.NewBaseEvent(shared.EventLevelUp, "user"),
			OldLevel:  oldLevel,
			NewLevel:  l.record.CurrentLevel,
		})
	}
}

// RecordSession folds a finished session into the ledger: cumulative
// counters, streak continuity, then per-skill mastery for every skill the
// session's game targets. Persists afterwards.
func (l *Ledger) RecordSession(ctx context.Context, session game.Session, targetSkills []game.CognitiveSkill) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.record.ApplySessionTotals(session)
	l.updateStreakLocked(ctx)

	performance := session.PerformanceScore()
	now := l.now()
	for _, skill := range targetSkills {
		if l.record.ImproveSkill(skill, performance, now) {
			sl := l.record.Skills[skill]
			l.logger.Info("skill level up",
				logger.SkillName(string(skill)),
				logger.Int("level", sl.Level))
			l.publish(shared.SkillLevelUpEvent{
				BaseEvent: shared.NewBaseEvent(shared.EventSkillLevelUp, "user"),
				Skill:     string(skill),
				NewLevel:  sl.Level,
			})
		}
	}

	l.saveLocked(ctx)
}

// UpdateStreak reconciles the daily streak against the stored last-play
// date and stamps the date to now. Invoked once per recorded session and
// once at startup.
func (l *Ledger) UpdateStreak(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updateStreakLocked(ctx)
	l.saveLocked(ctx)
}

func (l *Ledger) updateStreakLocked(ctx context.Context) {
	lastPlay, err := l.store.LoadLastPlayDate(ctx)
	if err != nil {
		l.logger.Warn("last play date load failed", logger.Err(err))
		lastPlay = nil
	}

	now := l.now()
	outcome := l.record.UpdateStreak(lastPlay, now)

	if err := l.store.SaveLastPlayDate(ctx, now); err != nil {
		l.logger.Warn("last play date save failed", logger.Err(err))
	}

	if outcome.Updated {
		l.publish(shared.StreakUpdatedEvent{
			BaseEvent:     shared.NewBaseEvent(shared.EventStreakUpdated, "user"),
			CurrentStreak: l.record.DailyStreak,
			BestStreak:    l.record.BestStreak,
			Broken:        outcome.Broken,
		})
	}
	if outcome.Broken {
		l.logger.Info("daily streak broken",
			logger.Int("best_streak", l.record.BestStreak))
	}
}

func (l *Ledger) saveLocked(ctx context.Context) {
	if err := l.store.SaveProgress(ctx, l.record); err != nil {
		l.logger.Error("progress save failed", logger.Err(err))
	}
}

func (l *Ledger) publish(event shared.Event) {
	if l.bus == nil {
		return
	}
	if err := l.bus.Publish(event); err != nil {
		l.logger.Warn("event publish failed",
			logger.String("event", string(event.EventType())), logger.Err(err))
	}
}
