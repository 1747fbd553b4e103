package query

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

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

func newStatsHandler(sessions ...game.Session) *GetStatisticsHandler {
	return NewGetStatisticsHandler(
		game.DefaultCatalog(),
		&memSessionLog{sessions: sessions},
		nil,
		quietLogger(),
	)
}

func TestBestScore_FromLog(t *testing.T) {
	g := game.DefaultCatalog().Games()[0]
	h := newStatsHandler(
		game.Session{GameID: g.ID, Score: 120},
		game.Session{GameID: g.ID, Score: 340},
		game.Session{GameID: "other", Score: 999},
	)

	assert.Equal(t, 340, h.BestScore(context.Background(), g.ID))
	assert.Equal(t, 0, h.BestScore(context.Background(), "never-played"))
}

func TestSessionsForGame_NewestFirstWithLimit(t *testing.T) {
	g := game.DefaultCatalog().Games()[0]
	h := newStatsHandler(
		game.Session{ID: "a", GameID: g.ID},
		game.Session{ID: "b", GameID: "other"},
		game.Session{ID: "c", GameID: g.ID},
		game.Session{ID: "d", GameID: g.ID},
	)

	got := h.SessionsForGame(context.Background(), g.ID, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestOverview_AggregatesPerGame(t *testing.T) {
	games := game.DefaultCatalog().Games()
	h := newStatsHandler(
		game.Session{GameID: games[0].ID, Score: 100, Correct: 10},
		game.Session{GameID: games[0].ID, Score: 200, Correct: 6, Incorrect: 2},
		game.Session{GameID: games[1].ID, Score: 50, Correct: 3, Incorrect: 1},
	)

	overview := h.Overview(context.Background())

	assert.Equal(t, 3, overview.SessionCount)
	assert.Equal(t, 350, overview.TotalScore)
	assert.Equal(t, 1, overview.PerfectSessions)

	require.Len(t, overview.PerGame, 2)
	first := overview.PerGame[0]
	assert.Equal(t, games[0].ID, first.GameID)
	assert.Equal(t, 200, first.BestScore)
	assert.Equal(t, 2, first.SessionCount)
	assert.InDelta(t, 87.5, first.AvgAccuracy, 1e-9)
}

func TestBuildProgressView(t *testing.T) {
	rec := progress.NewUserProgress()
	rec.ExperiencePoints = 400
	rec.CurrentLevel = 2
	rec.LevelProgress = 0.2
	rec.DailyStreak = 3
	rec.BestStreak = 9
	rec.Skills[game.SkillWorkingMemory] = &progress.SkillLevel{Level: 2, Progress: 0.5}

	view := buildProgressView(*rec)

	assert.Equal(t, 2, view.CurrentLevel)
	assert.Equal(t, 2000, view.LevelUpThreshold)
	assert.Equal(t, 3, view.DailyStreak)
	assert.Equal(t, 9, view.BestStreak)

	require.Len(t, view.Skills, 1)
	assert.Equal(t, game.SkillWorkingMemory, view.Skills[0].Skill)
	assert.NotEmpty(t, view.Skills[0].DisplayName)
	assert.Equal(t, 2, view.Skills[0].Level)
}
