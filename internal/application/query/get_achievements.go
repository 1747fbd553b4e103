package query

import (
	"context"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/saga"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/achievement"
)

// AchievementsView is the achievement list plus unlock totals.
type AchievementsView struct {
	Achievements     []achievement.Achievement `json:"achievements"`
	UnlockedCount    int                       `json:"unlocked_count"`
	TotalRewards     int                       `json:"total_rewards"` // XP earned from unlocked achievements
	RecentlyUnlocked []achievement.Achievement `json:"recently_unlocked"`
}

// recentLimit caps the recently-unlocked list.
const recentLimit = 5

// GetAchievementsHandler returns the achievement list with unlock totals.
type GetAchievementsHandler struct {
	flow *saga.AchievementFlow
}

// NewGetAchievementsHandler creates a GetAchievementsHandler.
func NewGetAchievementsHandler(flow *saga.AchievementFlow) *GetAchievementsHandler {
	return &GetAchievementsHandler{flow: flow}
}

// Handle builds the achievements view.
func (h *GetAchievementsHandler) Handle(ctx context.Context) AchievementsView {
	achievements := h.flow.Achievements(ctx)

	view := AchievementsView{
		Achievements:     achievements,
		RecentlyUnlocked: h.flow.RecentlyUnlocked(ctx, recentLimit),
	}
	for _, a := range achievements {
		if a.IsUnlocked {
			view.UnlockedCount++
			view.TotalRewards += a.Reward
		}
	}
	return view
}
