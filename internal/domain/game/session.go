package game

import (
	"time"
)

// Performance score weights. The composite stays on a 0-100 scale:
// accuracy and raw score carry most of it, reaction speed the rest.
const (
	accuracyWeight = 0.4
	scoreWeight    = 0.3
	speedWeight    = 0.3

	// Reaction times at or above this many milliseconds contribute nothing
	// to the speed component.
	speedCeilingMs = 500
)

// Session is an immutable record of one completed play of a game.
// It is created when the player finishes and never mutated afterwards.
type Session struct {
	ID            string    `json:"id"`
	GameID        string    `json:"game_id"`
	DifficultyID  string    `json:"difficulty_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Score         int       `json:"score"`
	MaxScore      int       `json:"max_score"`
	Correct       int       `json:"correct_answers"`
	Incorrect     int       `json:"incorrect_answers"`
	ReactionTimes []float64 `json:"reaction_times,omitempty"` // milliseconds
	Notes         *string   `json:"notes,omitempty"`
}

// Duration returns how long the session lasted.
func (s Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Accuracy returns the percentage of correct answers (0-100).
// A session with no answers has accuracy 0.
func (s Session) Accuracy() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total) * 100
}

// IsPerfect reports whether every answer in the session was correct.
func (s Session) IsPerfect() bool {
	return s.Accuracy() >= 100.0
}

// PerformanceScore is the composite performance indicator (0-100) that
// drives skill leveling. Accuracy weighs 40%, score-vs-max 30%, and
// average reaction speed 30% (only when reaction times were sampled).
// A zero MaxScore contributes nothing instead of dividing by zero.
func (s Session) PerformanceScore() float64 {
	accuracyComponent := s.Accuracy() * accuracyWeight

	scoreComponent := 0.0
	if s.MaxScore > 0 {
		scoreComponent = float64(s.Score) / float64(s.MaxScore) * 100 * scoreWeight
	}

	speedComponent := 0.0
	if len(s.ReactionTimes) > 0 {
		sum := 0.0
		for _, rt := range s.ReactionTimes {
			sum += rt
		}
		avg := sum / float64(len(s.ReactionTimes))
		// Faster is better (inverted scale).
		speedComponent = max(0, speedCeilingMs-avg) / 5 * speedWeight
	}

	return accuracyComponent + scoreComponent + speedComponent
}
