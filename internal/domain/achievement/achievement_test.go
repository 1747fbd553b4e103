package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
)

func snapshotWith(p *progress.UserProgress) Snapshot {
	return Snapshot{Progress: p}
}

func TestSatisfiedBy_NilProgressNeverUnlocks(t *testing.T) {
	assert.False(t, TotalGames(1).SatisfiedBy(Snapshot{}))
}

func TestSatisfiedBy_TotalGames(t *testing.T) {
	p := progress.NewUserProgress()
	p.TotalGamesPlayed = 9

	assert.False(t, TotalGames(10).SatisfiedBy(snapshotWith(p)))

	p.TotalGamesPlayed = 10
	assert.True(t, TotalGames(10).SatisfiedBy(snapshotWith(p)))
}

func TestSatisfiedBy_PerfectScores(t *testing.T) {
	s := Snapshot{Progress: progress.NewUserProgress(), PerfectSessions: 3}

	assert.True(t, PerfectScores(3).SatisfiedBy(s))
	assert.False(t, PerfectScores(4).SatisfiedBy(s))
}

func TestSatisfiedBy_Streak(t *testing.T) {
	p := progress.NewUserProgress()
	p.DailyStreak = 7

	assert.True(t, Streak(7).SatisfiedBy(snapshotWith(p)))
	assert.False(t, Streak(8).SatisfiedBy(snapshotWith(p)))
}

func TestSatisfiedBy_SkillMastery(t *testing.T) {
	p := progress.NewUserProgress()

	// Absent skill never satisfies.
	assert.False(t, SkillMastery(game.SkillProcessingSpeed, 1).SatisfiedBy(snapshotWith(p)))

	p.Skills[game.SkillProcessingSpeed] = &progress.SkillLevel{Level: 5}
	assert.True(t, SkillMastery(game.SkillProcessingSpeed, 5).SatisfiedBy(snapshotWith(p)))
	assert.False(t, SkillMastery(game.SkillProcessingSpeed, 6).SatisfiedBy(snapshotWith(p)))
}

func TestSatisfiedBy_DailyChallenges(t *testing.T) {
	s := Snapshot{Progress: progress.NewUserProgress(), CompletedChallenges: 5}

	assert.True(t, DailyChallengesCompleted(5).SatisfiedBy(s))
	assert.False(t, DailyChallengesCompleted(6).SatisfiedBy(s))
}

func TestSatisfiedBy_UnknownKind(t *testing.T) {
	r := Requirement{Kind: "time_traveler", Count: 1}
	assert.False(t, r.SatisfiedBy(snapshotWith(progress.NewUserProgress())))
}

func TestUnlock_OneWay(t *testing.T) {
	a := Achievement{Name: "First Step"}
	first := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	a.Unlock(first)
	require.NotNil(t, a.UnlockedDate)
	assert.True(t, a.IsUnlocked)
	assert.Equal(t, first, *a.UnlockedDate)

	a.Unlock(first.Add(24 * time.Hour))
	assert.Equal(t, first, *a.UnlockedDate)
}

func TestSeedCatalog(t *testing.T) {
	seeds := SeedCatalog()

	require.Len(t, seeds, 4)
	for _, a := range seeds {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.Greater(t, a.Reward, 0)
		assert.False(t, a.IsUnlocked)
	}
}
