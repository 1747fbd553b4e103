// Package progress contains the user progress ledger: experience and
// leveling, daily streaks, and per-skill mastery. UserProgress is a
// singleton per user and is mutated only through the operations here.
package progress

import (
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/timeutil"
)

// XPPerLevel is the per-level multiplier of the level-up threshold:
// level L requires L * XPPerLevel experience points to advance.
const XPPerLevel = 1000

// SkillProgressDivisor scales a session performance score (0-100) into
// skill progress: performance/1000 of a level per session.
const SkillProgressDivisor = 1000.0

// SkillLevel tracks mastery of one cognitive skill.
type SkillLevel struct {
	Level        int       `json:"level"`    // >= 1
	Progress     float64   `json:"progress"` // [0, 1)
	LastImproved time.Time `json:"last_improved"`
}

// UserProgress is the per-user progress record.
type UserProgress struct {
	TotalGamesPlayed int                                 `json:"total_games_played"`
	TotalScore       int                                 `json:"total_score"`
	ExperiencePoints int                                 `json:"experience_points"`
	CurrentLevel     int                                 `json:"current_level"`  // >= 1
	LevelProgress    float64                             `json:"level_progress"` // [0, 1]
	DailyStreak      int                                 `json:"daily_streak"`
	BestStreak       int                                 `json:"best_streak"`
	Skills           map[game.CognitiveSkill]*SkillLevel `json:"skills"`
}

// NewUserProgress returns a fresh record with zero defaults, as created
// on first launch.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		CurrentLevel: 1,
		Skills:       make(map[game.CognitiveSkill]*SkillLevel),
	}
}

// LevelUpThreshold returns the XP required to leave the current level.
func (p *UserProgress) LevelUpThreshold() int {
	return p.CurrentLevel * XPPerLevel
}

// AddExperience awards points and performs at most one level-up.
// When the threshold is exceeded the XP rolls over against the threshold
// that was just exceeded; a very large award does not cascade through
// multiple levels in one call. LevelProgress is recomputed afterwards so
// the invariant levelProgress == xp/threshold(level) always holds.
func (p *UserProgress) AddExperience(points int) (leveledUp bool) {
	p.ExperiencePoints += points
	if p.ExperiencePoints >= p.LevelUpThreshold() {
		threshold := p.LevelUpThreshold()
		p.CurrentLevel++
		p.ExperiencePoints = p.ExperiencePoints % threshold
		leveledUp = true
	}
	p.LevelProgress = float64(p.ExperiencePoints) / float64(p.LevelUpThreshold())
	return leveledUp
}

// ApplySessionTotals folds a finished session into the cumulative counters.
// Streak and skill updates are separate operations.
func (p *UserProgress) ApplySessionTotals(s game.Session) {
	p.TotalGamesPlayed++
	p.TotalScore += s.Score
}

// ImproveSkill adds a session's performance to a skill, lazily creating
// the SkillLevel on first contribution. Crossing 1.0 progress advances the
// skill one level and resets progress; there is no cascading and no cap.
func (p *UserProgress) ImproveSkill(skill game.CognitiveSkill, performance float64, now time.Time) (leveledUp bool) {
	if p.Skills == nil {
		p.Skills = make(map[game.CognitiveSkill]*SkillLevel)
	}

	sl, ok := p.Skills[skill]
	if !ok {
		sl = &SkillLevel{Level: 1, Progress: 0, LastImproved: now}
		p.Skills[skill] = sl
	}

	sl.Progress += performance / SkillProgressDivisor

	if sl.Progress >= 1.0 {
		sl.Level++
		sl.Progress = 0
		sl.LastImproved = now
		return true
	}
	return false
}

// StreakOutcome describes the result of a streak update.
type StreakOutcome struct {
	Updated bool // streak value changed or was stamped for the first time
	Broken  bool // a previous streak was folded into BestStreak
}

// UpdateStreak reconciles the daily streak against the last recorded play
// day. lastPlay is nil when the user has never played before.
//
//   - no prior date: streak starts at 1
//   - last play was today: no change (already counted)
//   - last play was yesterday: streak extends by 1
//   - older: the streak is broken; it is folded into BestStreak and reset to 1
//
// BestStreak is raised to match DailyStreak after every branch.
func (p *UserProgress) UpdateStreak(lastPlay *time.Time, now time.Time) StreakOutcome {
	var out StreakOutcome

	if lastPlay == nil {
		p.DailyStreak = 1
		out.Updated = true
	} else {
		days := timeutil.DaysBetween(*lastPlay, now)
		switch {
		case days == 0:
			// Already played today.
		case days == 1:
			p.DailyStreak++
			out.Updated = true
		default:
			if p.DailyStreak > p.BestStreak {
				p.BestStreak = p.DailyStreak
			}
			p.DailyStreak = 1
			out.Updated = true
			out.Broken = true
		}
	}

	if p.DailyStreak > p.BestStreak {
		p.BestStreak = p.DailyStreak
	}
	return out
}
