// Package game contains the brain-game catalog and the game-session model.
// Games are static catalog entries; sessions are immutable records of one
// completed play of a game at a chosen difficulty.
package game

import (
	"time"
)

// Type classifies a brain game by the kind of exercise it presents.
type Type string

const (
	TypeMemory    Type = "memory"
	TypeReaction  Type = "reaction"
	TypeLogic     Type = "logic"
	TypeAttention Type = "attention"
	TypeSpeed     Type = "speed"
)

// CognitiveSkill identifies a trainable cognitive ability.
type CognitiveSkill string

const (
	SkillWorkingMemory      CognitiveSkill = "working_memory"
	SkillProcessingSpeed    CognitiveSkill = "processing_speed"
	SkillVisualAttention    CognitiveSkill = "visual_attention"
	SkillLogicalThinking    CognitiveSkill = "logical_thinking"
	SkillPatternRecognition CognitiveSkill = "pattern_recognition"
)

// AllSkills lists every cognitive skill in catalog order.
func AllSkills() []CognitiveSkill {
	return []CognitiveSkill{
		SkillWorkingMemory,
		SkillProcessingSpeed,
		SkillVisualAttention,
		SkillLogicalThinking,
		SkillPatternRecognition,
	}
}

// DisplayName returns the human-readable skill name.
func (s CognitiveSkill) DisplayName() string {
	switch s {
	case SkillWorkingMemory:
		return "Working Memory"
	case SkillProcessingSpeed:
		return "Processing Speed"
	case SkillVisualAttention:
		return "Visual Attention"
	case SkillLogicalThinking:
		return "Logical Thinking"
	case SkillPatternRecognition:
		return "Pattern Recognition"
	default:
		return string(s)
	}
}

// IsValid reports whether the skill is a known catalog skill.
func (s CognitiveSkill) IsValid() bool {
	switch s {
	case SkillWorkingMemory, SkillProcessingSpeed, SkillVisualAttention,
		SkillLogicalThinking, SkillPatternRecognition:
		return true
	}
	return false
}

// Difficulty describes one selectable difficulty tier of a game.
type Difficulty struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Level       int            `json:"level"` // 1-5
	TimeLimit   *time.Duration `json:"time_limit,omitempty"`
	TargetScore int            `json:"target_score"`
}

// BrainGame is a static catalog entry for one mini-game.
type BrainGame struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Type             Type             `json:"type"`
	Description      string           `json:"description"`
	DifficultyLevels []Difficulty     `json:"difficulty_levels"`
	IconName         string           `json:"icon_name"`
	ColorHex         string           `json:"color_hex"`
	Instructions     []string         `json:"instructions"`
	TargetSkills     []CognitiveSkill `json:"target_skills"`
}

// Difficulty returns the difficulty tier with the given ID.
func (g BrainGame) Difficulty(id string) (Difficulty, bool) {
	for _, d := range g.DifficultyLevels {
		if d.ID == id {
			return d, true
		}
	}
	return Difficulty{}, false
}
