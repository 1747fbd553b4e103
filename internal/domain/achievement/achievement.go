// Package achievement contains unlockable milestones tied to predicates
// over cumulative progress, session, and challenge state. Unlocking is
// one-way: a once-unlocked achievement is never re-evaluated or re-locked.
package achievement

import (
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
)

// RequirementKind tags the closed set of unlock predicates.
type RequirementKind string

const (
	KindTotalGames               RequirementKind = "total_games"
	KindPerfectScores            RequirementKind = "perfect_scores"
	KindStreak                   RequirementKind = "streak"
	KindSkillMastery             RequirementKind = "skill_mastery"
	KindDailyChallengesCompleted RequirementKind = "daily_challenges_completed"
)

// Requirement is the tagged unlock predicate. Only the fields relevant to
// the kind are set; construct values through the helpers below.
type Requirement struct {
	Kind  RequirementKind     `json:"kind"`
	Count int                 `json:"count,omitempty"` // games, perfect scores, days, challenges
	Skill game.CognitiveSkill `json:"skill,omitempty"` // skill_mastery only
	Level int                 `json:"level,omitempty"` // skill_mastery only
}

// TotalGames requires n recorded sessions in total.
func TotalGames(n int) Requirement {
	return Requirement{Kind: KindTotalGames, Count: n}
}

// PerfectScores requires n sessions with 100% accuracy.
func PerfectScores(n int) Requirement {
	return Requirement{Kind: KindPerfectScores, Count: n}
}

// Streak requires a current daily streak of at least d days.
func Streak(d int) Requirement {
	return Requirement{Kind: KindStreak, Count: d}
}

// SkillMastery requires the given cognitive skill at the given level.
func SkillMastery(skill game.CognitiveSkill, level int) Requirement {
	return Requirement{Kind: KindSkillMastery, Skill: skill, Level: level}
}

// DailyChallengesCompleted requires n completed daily challenges.
func DailyChallengesCompleted(n int) Requirement {
	return Requirement{Kind: KindDailyChallengesCompleted, Count: n}
}

// Snapshot is the state an unlock predicate is evaluated against.
type Snapshot struct {
	Progress            *progress.UserProgress
	PerfectSessions     int
	CompletedChallenges int
}

// SatisfiedBy evaluates the predicate against a state snapshot.
// The switch is exhaustive over RequirementKind; unknown kinds never unlock.
func (r Requirement) SatisfiedBy(s Snapshot) bool {
	if s.Progress == nil {
		return false
	}
	switch r.Kind {
	case KindTotalGames:
		return s.Progress.TotalGamesPlayed >= r.Count
	case KindPerfectScores:
		return s.PerfectSessions >= r.Count
	case KindStreak:
		return s.Progress.DailyStreak >= r.Count
	case KindSkillMastery:
		sl, ok := s.Progress.Skills[r.Skill]
		return ok && sl.Level >= r.Level
	case KindDailyChallengesCompleted:
		return s.CompletedChallenges >= r.Count
	default:
		return false
	}
}

// Achievement is one unlockable milestone.
type Achievement struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	IconName     string      `json:"icon_name"`
	Requirement  Requirement `json:"requirement"`
	Reward       int         `json:"reward"` // experience points
	IsUnlocked   bool        `json:"is_unlocked"`
	UnlockedDate *time.Time  `json:"unlocked_date,omitempty"`
}

// Unlock marks the achievement unlocked at the given time.
// The transition is one-way; unlocking twice is a no-op.
func (a *Achievement) Unlock(now time.Time) {
	if a.IsUnlocked {
		return
	}
	a.IsUnlocked = true
	a.UnlockedDate = &now
}
