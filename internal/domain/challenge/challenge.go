// Package challenge contains the daily challenge model: one system-picked
// game, difficulty and target score per calendar day, completable once.
package challenge

import (
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/timeutil"
)

// RewardPerDifficultyLevel is the XP reward multiplier: a challenge at
// difficulty level L pays L * 50 experience points.
const RewardPerDifficultyLevel = 50

// DailyChallenge is one day's challenge. Historical challenges are
// retained; only the completion fields ever mutate, and only once.
type DailyChallenge struct {
	ID             string         `json:"id"`
	Date           time.Time      `json:"date"`
	GameID         string         `json:"game_id"`
	DifficultyID   string         `json:"difficulty_id"`
	TargetScore    int            `json:"target_score"`
	Reward         int            `json:"reward"` // experience points
	IsCompleted    bool           `json:"is_completed"`
	CompletionTime *time.Duration `json:"completion_time,omitempty"`
}

// IsActive reports whether the challenge belongs to the current calendar day.
func (c DailyChallenge) IsActive() bool {
	return timeutil.IsToday(c.Date)
}

// IsActiveOn reports whether the challenge belongs to the same calendar
// day as the given time.
func (c DailyChallenge) IsActiveOn(t time.Time) bool {
	return timeutil.IsSameDay(c.Date, t)
}

// Complete marks the challenge completed and stamps the completion time
// as the elapsed duration since the challenge was issued. Completion is
// one-way; calling it on a completed challenge is a no-op.
func (c *DailyChallenge) Complete(now time.Time) {
	if c.IsCompleted {
		return
	}
	c.IsCompleted = true
	elapsed := now.Sub(c.Date)
	c.CompletionTime = &elapsed
}
