package redis

import (
	"context"
	"errors"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/achievement"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// AchievementStore implements achievement.Store on the key-value cache.
// When nothing usable is stored, Load returns the fixed seed catalog.
type AchievementStore struct {
	cache  *Cache
	logger *logger.Logger
}

// NewAchievementStore creates an AchievementStore.
func NewAchievementStore(cache *Cache, log *logger.Logger) *AchievementStore {
	if log == nil {
		log = logger.Default()
	}
	return &AchievementStore{
		cache:  cache,
		logger: log.With(logger.Component("achievement_store")),
	}
}

// Load returns the stored achievements, or the seed catalog when the key
// is missing or unparsable.
func (s *AchievementStore) Load(ctx context.Context) ([]achievement.Achievement, error) {
	var achievements []achievement.Achievement
	err := s.cache.Get(ctx, KeyAchievements, &achievements)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return achievement.SeedCatalog(), nil
		}
		if errors.Is(err, ErrCacheSerialization) {
			s.logger.Warn("stored achievements unparsable, reseeding", logger.Err(err))
			return achievement.SeedCatalog(), nil
		}
		return nil, err
	}
	if len(achievements) == 0 {
		return achievement.SeedCatalog(), nil
	}
	return achievements, nil
}

// Save replaces the stored achievement list.
func (s *AchievementStore) Save(ctx context.Context, achievements []achievement.Achievement) error {
	return s.cache.Set(ctx, KeyAchievements, achievements, 0)
}

var _ achievement.Store = (*AchievementStore)(nil)
