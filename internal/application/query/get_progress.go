// Package query contains read operations (CQRS - Queries).
package query

import (
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
)

// SkillView is one skill's mastery for presentation.
type SkillView struct {
	Skill       game.CognitiveSkill `json:"skill"`
	DisplayName string              `json:"display_name"`
	Level       int                 `json:"level"`
	Progress    float64             `json:"progress"`
}

// ProgressView is the progress snapshot returned to clients.
type ProgressView struct {
	TotalGamesPlayed int         `json:"total_games_played"`
	TotalScore       int         `json:"total_score"`
	ExperiencePoints int         `json:"experience_points"`
	CurrentLevel     int         `json:"current_level"`
	LevelProgress    float64     `json:"level_progress"`
	LevelUpThreshold int         `json:"level_up_threshold"`
	DailyStreak      int         `json:"daily_streak"`
	BestStreak       int         `json:"best_streak"`
	Skills           []SkillView `json:"skills"`
}

// GetProgressHandler returns the current progress snapshot.
type GetProgressHandler struct {
	ledger *ledger.Ledger
}

// NewGetProgressHandler creates a GetProgressHandler.
func NewGetProgressHandler(l *ledger.Ledger) *GetProgressHandler {
	return &GetProgressHandler{ledger: l}
}

// Handle builds the progress view from the ledger snapshot. Skills appear
// in catalog order; skills without contributions yet are omitted.
func (h *GetProgressHandler) Handle() ProgressView {
	rec := h.ledger.Snapshot()
	return buildProgressView(rec)
}

func buildProgressView(rec progress.UserProgress) ProgressView {
	view := ProgressView{
		TotalGamesPlayed: rec.TotalGamesPlayed,
		TotalScore:       rec.TotalScore,
		ExperiencePoints: rec.ExperiencePoints,
		CurrentLevel:     rec.CurrentLevel,
		LevelProgress:    rec.LevelProgress,
		LevelUpThreshold: rec.LevelUpThreshold(),
		DailyStreak:      rec.DailyStreak,
		BestStreak:       rec.BestStreak,
		Skills:           make([]SkillView, 0, len(rec.Skills)),
	}
	for _, skill := range game.AllSkills() {
		sl, ok := rec.Skills[skill]
		if !ok {
			continue
		}
		view.Skills = append(view.Skills, SkillView{
			Skill:       skill,
			DisplayName: skill.DisplayName(),
			Level:       sl.Level,
			Progress:    sl.Progress,
		})
	}
	return view
}
