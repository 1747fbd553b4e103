package achievement

import (
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
)

// SeedCatalog returns the fixed achievement catalog used when nothing has
// been stored yet. IDs are fixed so unlock state survives reseeding.
func SeedCatalog() []Achievement {
	return []Achievement{
		{
			ID:          "e0a1f101-0000-4000-8000-000000000001",
			Name:        "First Step",
			Description: "Play your first game",
			IconName:    "star.fill",
			Requirement: TotalGames(1),
			Reward:      100,
		},
		{
			ID:          "e0a1f101-0000-4000-8000-000000000002",
			Name:        "Week of Discipline",
			Description: "7 days in a row",
			IconName:    "flame.fill",
			Requirement: Streak(7),
			Reward:      500,
		},
		{
			ID:          "e0a1f101-0000-4000-8000-000000000003",
			Name:        "Perfect Memory",
			Description: "10 perfect memory scores",
			IconName:    "brain.head.profile",
			Requirement: PerfectScores(10),
			Reward:      300,
		},
		{
			ID:          "e0a1f101-0000-4000-8000-000000000004",
			Name:        "Reaction Master",
			Description: "Reach level 5 in reaction",
			IconName:    "bolt.fill",
			Requirement: SkillMastery(game.SkillProcessingSpeed, 5),
			Reward:      400,
		},
	}
}
