package command

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/challenge"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test fakes
// ─────────────────────────────────────────────────────────────────────────────

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

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestLedger(t *testing.T, now time.Time) *ledger.Ledger {
	t.Helper()
	return ledger.New(context.Background(), ledger.Config{
		Store:  &memProgressStore{},
		Logger: quietLogger(),
		Now:    fixedClock(now),
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Challenge engine tests
// ─────────────────────────────────────────────────────────────────────────────

func newTestEngine(t *testing.T, now time.Time) (*ChallengeEngine, *memChallengeStore, *ledger.Ledger) {
	t.Helper()
	store := &memChallengeStore{}
	led := newTestLedger(t, now)
	engine := NewChallengeEngine(ChallengeEngineConfig{
		Store:   store,
		Catalog: game.DefaultCatalog(),
		Ledger:  led,
		Logger:  quietLogger(),
		Now:     fixedClock(now),
		IntN:    func(n int) int { return 0 },
	})
	return engine, store, led
}

func TestGenerateTodayChallenge(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, store, _ := newTestEngine(t, now)

	c, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)

	g := game.DefaultCatalog().Games()[0]
	d := g.DifficultyLevels[0]
	assert.Equal(t, g.ID, c.GameID)
	assert.Equal(t, d.ID, c.DifficultyID)
	assert.Equal(t, d.TargetScore, c.TargetScore)
	assert.Equal(t, d.Level*challenge.RewardPerDifficultyLevel, c.Reward)
	assert.False(t, c.IsCompleted)
	assert.Len(t, store.challenges, 1)
}

func TestGenerateTodayChallenge_Idempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, store, _ := newTestEngine(t, now)

	first, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)
	second, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.challenges, 1)
}

func TestGenerateTodayChallenge_NewDayNewChallenge(t *testing.T) {
	store := &memChallengeStore{}
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	clock := day1
	engine := NewChallengeEngine(ChallengeEngineConfig{
		Store:   store,
		Catalog: game.DefaultCatalog(),
		Ledger:  newTestLedger(t, day1),
		Logger:  quietLogger(),
		Now:     func() time.Time { return clock },
		IntN:    func(n int) int { return 0 },
	})

	first, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)

	clock = day2
	second, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.challenges, 2)
}

func TestTodayChallenge_NilWhenAbsent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, _, _ := newTestEngine(t, now)

	assert.Nil(t, engine.TodayChallenge(context.Background()))
}

func TestCheckCompletion_PaysRewardOnce(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, store, led := newTestEngine(t, now)

	c, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)
	xpBefore := led.Snapshot().ExperiencePoints

	engine.CheckCompletion(context.Background(), c.GameID, c.TargetScore)

	stored := store.challenges[0]
	assert.True(t, stored.IsCompleted)
	require.NotNil(t, stored.CompletionTime)
	assert.Equal(t, xpBefore+c.Reward, led.Snapshot().ExperiencePoints)

	// A second qualifying session must not pay again.
	engine.CheckCompletion(context.Background(), c.GameID, c.TargetScore+100)
	assert.Equal(t, xpBefore+c.Reward, led.Snapshot().ExperiencePoints)
}

func TestCheckCompletion_BelowTargetIsNoOp(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, store, led := newTestEngine(t, now)

	c, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)
	xpBefore := led.Snapshot().ExperiencePoints

	engine.CheckCompletion(context.Background(), c.GameID, c.TargetScore-1)

	assert.False(t, store.challenges[0].IsCompleted)
	assert.Equal(t, xpBefore, led.Snapshot().ExperiencePoints)
}

func TestCheckCompletion_WrongGameIsNoOp(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, store, _ := newTestEngine(t, now)

	c, err := engine.GenerateTodayChallengeIfNeeded(context.Background())
	require.NoError(t, err)

	otherGame := game.DefaultCatalog().Games()[1]
	engine.CheckCompletion(context.Background(), otherGame.ID, c.TargetScore+1000)

	assert.False(t, store.challenges[0].IsCompleted)
}

func TestCheckCompletion_NoChallengeTodayIsNoOp(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	engine, _, led := newTestEngine(t, now)
	xpBefore := led.Snapshot().ExperiencePoints

	engine.CheckCompletion(context.Background(), "whatever", 100000)

	assert.Equal(t, xpBefore, led.Snapshot().ExperiencePoints)
}
