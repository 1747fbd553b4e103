package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		incorrect int
		want      float64
	}{
		{"no answers", 0, 0, 0},
		{"all correct", 10, 0, 100},
		{"all wrong", 0, 10, 0},
		{"three quarters", 15, 5, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{Correct: tt.correct, Incorrect: tt.incorrect}
			assert.InDelta(t, tt.want, s.Accuracy(), 1e-9)
		})
	}
}

func TestIsPerfect(t *testing.T) {
	assert.True(t, Session{Correct: 5, Incorrect: 0}.IsPerfect())
	assert.False(t, Session{Correct: 5, Incorrect: 1}.IsPerfect())
	assert.False(t, Session{}.IsPerfect())
}

func TestPerformanceScore_AccuracyAndScoreOnly(t *testing.T) {
	// 100% accuracy and full score, no reaction samples:
	// 100*0.4 + 100*0.3 = 70.
	s := Session{Correct: 10, Score: 200, MaxScore: 200}
	assert.InDelta(t, 70.0, s.PerformanceScore(), 1e-9)
}

func TestPerformanceScore_WithReactionTimes(t *testing.T) {
	// avg RT 250ms: (500-250)/5 * 0.3 = 15.
	s := Session{
		Correct:       10,
		Score:         200,
		MaxScore:      200,
		ReactionTimes: []float64{200, 300},
	}
	assert.InDelta(t, 85.0, s.PerformanceScore(), 1e-9)
}

func TestPerformanceScore_SlowReactionsContributeNothing(t *testing.T) {
	s := Session{
		Correct:       10,
		Score:         200,
		MaxScore:      200,
		ReactionTimes: []float64{800, 900},
	}
	assert.InDelta(t, 70.0, s.PerformanceScore(), 1e-9)
}

func TestPerformanceScore_ZeroMaxScoreGuard(t *testing.T) {
	s := Session{Correct: 10, Score: 50, MaxScore: 0}
	assert.InDelta(t, 40.0, s.PerformanceScore(), 1e-9)
}

func TestDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := Session{StartTime: start, EndTime: start.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, s.Duration())
}
