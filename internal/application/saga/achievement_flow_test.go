package saga

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/achievement"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/challenge"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test fakes
// ─────────────────────────────────────────────────────────────────────────────

type memAchievementStore struct {
	achievements []achievement.Achievement
	failLoad     bool
	saves        int
}

func (m *memAchievementStore) Load(ctx context.Context) ([]achievement.Achievement, error) {
	if m.failLoad {
		return nil, errors.New("storage offline")
	}
	out := make([]achievement.Achievement, len(m.achievements))
	copy(out, m.achievements)
	return out, nil
}

func (m *memAchievementStore) Save(ctx context.Context, achievements []achievement.Achievement) error {
	m.achievements = make([]achievement.Achievement, len(achievements))
	copy(m.achievements, achievements)
	m.saves++
	return nil
}

type memSessionLog struct {
	sessions []game.Session
}

func (m *memSessionLog) Load(ctx context.Context) ([]game.Session, error) {
	out := make([]game.Session, len(m.sessions))
	copy(out, m.sessions)
	return out, nil
}

func (m *memSessionLog) Save(ctx context.Context, sessions []game.Session) error {
	m.sessions = make([]game.Session, len(sessions))
	copy(m.sessions, sessions)
	return nil
}

func (m *memSessionLog) Append(ctx context.Context, session game.Session) error {
	m.sessions = append(m.sessions, session)
	return nil
}

type memChallengeStore struct {
	challenges []challenge.DailyChallenge
}

func (m *memChallengeStore) Load(ctx context.Context) ([]challenge.DailyChallenge, error) {
	out := make([]challenge.DailyChallenge, len(m.challenges))
	copy(out, m.challenges)
	return out, nil
}

func (m *memChallengeStore) Save(ctx context.Context, challenges []challenge.DailyChallenge) error {
	m.challenges = make([]challenge.DailyChallenge, len(challenges))
	copy(m.challenges, challenges)
	return nil
}

type memProgressStore struct {
	progress *progress.UserProgress
	lastPlay *time.Time
}

func (m *memProgressStore) LoadProgress(ctx context.Context) (*progress.UserProgress, error) {
	return m.progress, nil
}

func (m *memProgressStore) SaveProgress(ctx context.Context, p *progress.UserProgress) error {
	cp := *p
	m.progress = &cp
	return nil
}

func (m *memProgressStore) LoadLastPlayDate(ctx context.Context) (*time.Time, error) {
	return m.lastPlay, nil
}

func (m *memProgressStore) SaveLastPlayDate(ctx context.Context, t time.Time) error {
	m.lastPlay = &t
	return nil
}

type captureBus struct {
	events []shared.Event
}

func (b *captureBus) Publish(event shared.Event) error {
	b.events = append(b.events, event)
	return nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type flowFixture struct {
	flow       *AchievementFlow
	store      *memAchievementStore
	sessions   *memSessionLog
	challenges *memChallengeStore
	ledger     *ledger.Ledger
	bus        *captureBus
}

func newFlowFixture(t *testing.T, now time.Time, progressStore *memProgressStore) *flowFixture {
	t.Helper()
	if progressStore == nil {
		progressStore = &memProgressStore{}
	}
	led := ledger.New(context.Background(), ledger.Config{
		Store:  progressStore,
		Logger: quietLogger(),
		Now:    fixedClock(now),
	})
	store := &memAchievementStore{achievements: achievement.SeedCatalog()}
	sessions := &memSessionLog{}
	challenges := &memChallengeStore{}
	bus := &captureBus{}
	flow := NewAchievementFlow(AchievementFlowConfig{
		Store:      store,
		Sessions:   sessions,
		Challenges: challenges,
		Ledger:     led,
		Publisher:  bus,
		Logger:     quietLogger(),
		Now:        fixedClock(now),
	})
	return &flowFixture{
		flow:       flow,
		store:      store,
		sessions:   sessions,
		challenges: challenges,
		ledger:     led,
		bus:        bus,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestAchievements_LoadsStoredCatalog(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)

	list := f.flow.Achievements(context.Background())

	require.Len(t, list, 4)
	for _, a := range list {
		assert.False(t, a.IsUnlocked)
	}
}

func TestAchievements_SeedFallbackWhenLoadFails(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)
	f.store.failLoad = true

	list := f.flow.Achievements(context.Background())

	require.Len(t, list, 4)
	assert.Equal(t, "First Step", list[0].Name)
}

func TestCheckAchievements_FirstGameUnlocksAndPays(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)

	f.ledger.RecordSession(context.Background(), game.Session{Score: 50, Correct: 5}, nil)
	xpBefore := f.ledger.Snapshot().ExperiencePoints
	f.bus.events = nil

	result := f.flow.CheckAchievements(context.Background())

	require.Len(t, result.Unlocked, 1)
	assert.Equal(t, "First Step", result.Unlocked[0].Name)
	assert.Equal(t, 100, result.RewardTotal)
	assert.Equal(t, 4, result.Evaluated)
	assert.Equal(t, now, result.CheckedAt)

	// Reward flows through the ledger.
	assert.Equal(t, xpBefore+100, f.ledger.Snapshot().ExperiencePoints)

	// The unlock is persisted.
	assert.Greater(t, f.store.saves, 0)
	stored := f.store.achievements[0]
	assert.True(t, stored.IsUnlocked)
	require.NotNil(t, stored.UnlockedDate)
	assert.Equal(t, now, *stored.UnlockedDate)

	// An unlock event is published alongside the XP events.
	var sawUnlock bool
	for _, e := range f.bus.events {
		if e.EventType() == shared.EventAchievementUnlocked {
			sawUnlock = true
		}
	}
	assert.True(t, sawUnlock)
}

func TestCheckAchievements_UnlockIsMonotonic(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)

	f.ledger.RecordSession(context.Background(), game.Session{Score: 50, Correct: 5}, nil)

	first := f.flow.CheckAchievements(context.Background())
	require.Len(t, first.Unlocked, 1)
	xpAfterFirst := f.ledger.Snapshot().ExperiencePoints

	second := f.flow.CheckAchievements(context.Background())

	assert.Empty(t, second.Unlocked)
	assert.Equal(t, 0, second.RewardTotal)
	// Unlocked achievements are skipped, not re-evaluated.
	assert.Equal(t, 3, second.Evaluated)
	assert.Equal(t, xpAfterFirst, f.ledger.Snapshot().ExperiencePoints)
}

func TestCheckAchievements_NothingQualifies(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)

	result := f.flow.CheckAchievements(context.Background())

	assert.Empty(t, result.Unlocked)
	assert.Equal(t, 0, result.RewardTotal)
	assert.Equal(t, 4, result.Evaluated)
	assert.Equal(t, 0, f.store.saves)
}

func TestCheckAchievements_StreakUnlock(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	stored := progress.NewUserProgress()
	stored.DailyStreak = 6
	yesterday := now.AddDate(0, 0, -1)
	f := newFlowFixture(t, now, &memProgressStore{progress: stored, lastPlay: &yesterday})

	// Startup extends yesterday's streak to 7.
	f.ledger.RecordSession(context.Background(), game.Session{Correct: 1}, nil)

	result := f.flow.CheckAchievements(context.Background())

	names := make([]string, 0, len(result.Unlocked))
	for _, a := range result.Unlocked {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, "Week of Discipline")
	assert.Contains(t, names, "First Step")
}

func TestCheckAchievements_PerfectScoresUnlock(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)

	for i := 0; i < 10; i++ {
		require.NoError(t, f.sessions.Append(context.Background(), game.Session{
			Score:    100,
			MaxScore: 100,
			Correct:  10,
		}))
	}
	f.ledger.RecordSession(context.Background(), game.Session{Correct: 1}, nil)

	result := f.flow.CheckAchievements(context.Background())

	names := make([]string, 0, len(result.Unlocked))
	for _, a := range result.Unlocked {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, "Perfect Memory")
}

func TestRecentlyUnlocked_NewestFirstWithLimit(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFlowFixture(t, now, nil)

	earlier := now.Add(-48 * time.Hour)
	seeds := achievement.SeedCatalog()
	seeds[0].Unlock(earlier)
	seeds[1].Unlock(now)
	f.store.achievements = seeds

	unlocked := f.flow.RecentlyUnlocked(context.Background(), 1)

	require.Len(t, unlocked, 1)
	assert.Equal(t, seeds[1].Name, unlocked[0].Name)
}
