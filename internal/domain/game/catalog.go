package game

import (
	"time"
)

// Catalog is the static set of playable games.
type Catalog struct {
	games []BrainGame
}

// NewCatalog builds a catalog from the given games.
func NewCatalog(games []BrainGame) *Catalog {
	return &Catalog{games: games}
}

// DefaultCatalog returns the built-in game catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultGames())
}

// Games returns all catalog entries.
func (c *Catalog) Games() []BrainGame {
	out := make([]BrainGame, len(c.games))
	copy(out, c.games)
	return out
}

// Get returns the game with the given ID.
func (c *Catalog) Get(id string) (BrainGame, bool) {
	for _, g := range c.games {
		if g.ID == id {
			return g, true
		}
	}
	return BrainGame{}, false
}

// Len returns the number of games in the catalog.
func (c *Catalog) Len() int {
	return len(c.games)
}

func limit(d time.Duration) *time.Duration {
	return &d
}

// DefaultGames returns the four built-in brain games. IDs are fixed so that
// persisted sessions and challenges stay valid across releases.
func DefaultGames() []BrainGame {
	return []BrainGame{
		{
			ID:          "7b0e3a52-9c1d-4f6e-8a11-0d2f5c7e9b01",
			Name:        "Photo Memory",
			Type:        TypeMemory,
			Description: "Remember the location of paired cards",
			DifficultyLevels: []Difficulty{
				{ID: "d1a0c001-0000-4000-8000-000000000001", Name: "Easy", Level: 1, TimeLimit: nil, TargetScore: 100},
				{ID: "d1a0c001-0000-4000-8000-000000000002", Name: "Medium", Level: 2, TimeLimit: limit(90 * time.Second), TargetScore: 200},
				{ID: "d1a0c001-0000-4000-8000-000000000003", Name: "Hard", Level: 3, TimeLimit: limit(60 * time.Second), TargetScore: 300},
			},
			IconName:     "square.grid.3x3.fill",
			ColorHex:     "00CED1",
			Instructions: []string{"Remember card positions", "Find pairs", "Fewer attempts = better"},
			TargetSkills: []CognitiveSkill{SkillWorkingMemory, SkillVisualAttention},
		},
		{
			ID:          "3f9d8e14-5b72-4c0a-9e35-6a81b2d4c702",
			Name:        "Lightning Reaction",
			Type:        TypeReaction,
			Description: "Tap appearing targets as fast as possible",
			DifficultyLevels: []Difficulty{
				{ID: "d1a0c002-0000-4000-8000-000000000001", Name: "Beginner", Level: 1, TimeLimit: limit(30 * time.Second), TargetScore: 50},
				{ID: "d1a0c002-0000-4000-8000-000000000002", Name: "Advanced", Level: 2, TimeLimit: limit(45 * time.Second), TargetScore: 100},
				{ID: "d1a0c002-0000-4000-8000-000000000003", Name: "Expert", Level: 3, TimeLimit: limit(60 * time.Second), TargetScore: 200},
			},
			IconName:     "bolt.fill",
			ColorHex:     "B0D524",
			Instructions: []string{"React instantly", "Don't miss targets", "Avoid false targets"},
			TargetSkills: []CognitiveSkill{SkillProcessingSpeed, SkillVisualAttention},
		},
		{
			ID:          "a24c6f88-1e93-4d57-b0c2-84f7e5a9d303",
			Name:        "Logic Chain",
			Type:        TypeLogic,
			Description: "Determine the next element in the sequence",
			DifficultyLevels: []Difficulty{
				{ID: "d1a0c003-0000-4000-8000-000000000001", Name: "Simple", Level: 1, TimeLimit: limit(20 * time.Second), TargetScore: 10},
				{ID: "d1a0c003-0000-4000-8000-000000000002", Name: "Medium", Level: 2, TimeLimit: limit(15 * time.Second), TargetScore: 20},
				{ID: "d1a0c003-0000-4000-8000-000000000003", Name: "Complex", Level: 3, TimeLimit: limit(10 * time.Second), TargetScore: 30},
			},
			IconName:     "brain.head.profile",
			ColorHex:     "8A2BE2",
			Instructions: []string{"Find the pattern", "Choose next element", "Act quickly"},
			TargetSkills: []CognitiveSkill{SkillLogicalThinking, SkillPatternRecognition},
		},
		{
			ID:          "c581b7d9-6a04-4e2f-8d16-9b3c0f2a8e04",
			Name:        "Speed Attention",
			Type:        TypeAttention,
			Description: "Find differences or track moving objects",
			DifficultyLevels: []Difficulty{
				{ID: "d1a0c004-0000-4000-8000-000000000001", Name: "Basic", Level: 1, TimeLimit: limit(40 * time.Second), TargetScore: 80},
				{ID: "d1a0c004-0000-4000-8000-000000000002", Name: "Advanced", Level: 2, TimeLimit: limit(50 * time.Second), TargetScore: 150},
				{ID: "d1a0c004-0000-4000-8000-000000000003", Name: "Expert", Level: 3, TimeLimit: limit(60 * time.Second), TargetScore: 250},
			},
			IconName:     "eye.fill",
			ColorHex:     "FF6B35",
			Instructions: []string{"Stay focused", "Don't get distracted", "Be accurate"},
			TargetSkills: []CognitiveSkill{SkillVisualAttention, SkillPatternRecognition},
		},
	}
}
