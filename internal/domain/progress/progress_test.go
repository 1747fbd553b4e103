package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
)

func TestNewUserProgress_Defaults(t *testing.T) {
	p := NewUserProgress()

	assert.Equal(t, 1, p.CurrentLevel)
	assert.Equal(t, 0, p.ExperiencePoints)
	assert.Equal(t, 0.0, p.LevelProgress)
	assert.Equal(t, 0, p.DailyStreak)
	assert.NotNil(t, p.Skills)
	assert.Equal(t, 1000, p.LevelUpThreshold())
}

func TestAddExperience_BelowThreshold(t *testing.T) {
	p := NewUserProgress()

	leveledUp := p.AddExperience(999)

	assert.False(t, leveledUp)
	assert.Equal(t, 1, p.CurrentLevel)
	assert.Equal(t, 999, p.ExperiencePoints)
	assert.InDelta(t, 0.999, p.LevelProgress, 1e-9)
}

func TestAddExperience_ExactThresholdLevelsUp(t *testing.T) {
	p := NewUserProgress()

	leveledUp := p.AddExperience(1000)

	assert.True(t, leveledUp)
	assert.Equal(t, 2, p.CurrentLevel)
	assert.Equal(t, 0, p.ExperiencePoints)
	assert.Equal(t, 0.0, p.LevelProgress)
	assert.Equal(t, 2000, p.LevelUpThreshold())
}

func TestAddExperience_RolloverUsesExceededThreshold(t *testing.T) {
	p := NewUserProgress()

	leveledUp := p.AddExperience(1500)

	// 1500 % 1000 = 500 carried into level 2.
	assert.True(t, leveledUp)
	assert.Equal(t, 2, p.CurrentLevel)
	assert.Equal(t, 500, p.ExperiencePoints)
	assert.InDelta(t, 0.25, p.LevelProgress, 1e-9)
}

func TestAddExperience_NoCascade(t *testing.T) {
	p := NewUserProgress()

	// A single huge award advances exactly one level.
	leveledUp := p.AddExperience(5000)

	assert.True(t, leveledUp)
	assert.Equal(t, 2, p.CurrentLevel)
	assert.Equal(t, 0, p.ExperiencePoints) // 5000 % 1000
}

func TestAddExperience_AccumulatesAcrossCalls(t *testing.T) {
	p := NewUserProgress()

	assert.False(t, p.AddExperience(400))
	assert.False(t, p.AddExperience(400))
	assert.True(t, p.AddExperience(400))

	assert.Equal(t, 2, p.CurrentLevel)
	assert.Equal(t, 200, p.ExperiencePoints)
}

func TestAddExperience_HigherLevelThreshold(t *testing.T) {
	p := NewUserProgress()
	p.CurrentLevel = 3

	assert.False(t, p.AddExperience(2999))
	assert.Equal(t, 3, p.CurrentLevel)

	assert.True(t, p.AddExperience(1))
	assert.Equal(t, 4, p.CurrentLevel)
	assert.Equal(t, 0, p.ExperiencePoints)
}

func TestApplySessionTotals(t *testing.T) {
	p := NewUserProgress()

	p.ApplySessionTotals(game.Session{Score: 120})
	p.ApplySessionTotals(game.Session{Score: 80})

	assert.Equal(t, 2, p.TotalGamesPlayed)
	assert.Equal(t, 200, p.TotalScore)
}

func TestImproveSkill_FirstContribution(t *testing.T) {
	p := NewUserProgress()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	leveledUp := p.ImproveSkill(game.SkillWorkingMemory, 70, now)

	assert.False(t, leveledUp)
	sl := p.Skills[game.SkillWorkingMemory]
	require.NotNil(t, sl)
	assert.Equal(t, 1, sl.Level)
	assert.InDelta(t, 0.07, sl.Progress, 1e-9)
}

func TestImproveSkill_LevelUpResetsProgress(t *testing.T) {
	p := NewUserProgress()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	p.Skills[game.SkillProcessingSpeed] = &SkillLevel{Level: 2, Progress: 0.95}

	leveledUp := p.ImproveSkill(game.SkillProcessingSpeed, 80, now)

	sl := p.Skills[game.SkillProcessingSpeed]
	assert.True(t, leveledUp)
	assert.Equal(t, 3, sl.Level)
	assert.Equal(t, 0.0, sl.Progress)
	assert.Equal(t, now, sl.LastImproved)
}

func TestUpdateStreak_FirstPlay(t *testing.T) {
	p := NewUserProgress()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	out := p.UpdateStreak(nil, now)

	assert.True(t, out.Updated)
	assert.False(t, out.Broken)
	assert.Equal(t, 1, p.DailyStreak)
	assert.Equal(t, 1, p.BestStreak)
}

func TestUpdateStreak_SameDayNoOp(t *testing.T) {
	p := NewUserProgress()
	p.DailyStreak = 4
	p.BestStreak = 4
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)

	out := p.UpdateStreak(&morning, evening)

	assert.False(t, out.Updated)
	assert.False(t, out.Broken)
	assert.Equal(t, 4, p.DailyStreak)
}

func TestUpdateStreak_ConsecutiveDayExtends(t *testing.T) {
	p := NewUserProgress()
	p.DailyStreak = 4
	p.BestStreak = 4
	yesterday := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC)

	out := p.UpdateStreak(&yesterday, today)

	assert.True(t, out.Updated)
	assert.False(t, out.Broken)
	assert.Equal(t, 5, p.DailyStreak)
	assert.Equal(t, 5, p.BestStreak)
}

func TestUpdateStreak_GapBreaksAndFoldsIntoBest(t *testing.T) {
	p := NewUserProgress()
	p.DailyStreak = 7
	p.BestStreak = 5
	lastWeek := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	out := p.UpdateStreak(&lastWeek, now)

	assert.True(t, out.Updated)
	assert.True(t, out.Broken)
	assert.Equal(t, 1, p.DailyStreak)
	assert.Equal(t, 7, p.BestStreak)
}

func TestUpdateStreak_BestStreakNeverDecreases(t *testing.T) {
	p := NewUserProgress()
	p.DailyStreak = 2
	p.BestStreak = 10
	twoDaysAgo := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	p.UpdateStreak(&twoDaysAgo, now)

	assert.Equal(t, 1, p.DailyStreak)
	assert.Equal(t, 10, p.BestStreak)
}
