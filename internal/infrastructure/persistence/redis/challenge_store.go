package redis

import (
	"context"
	"errors"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/challenge"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ChallengeStore implements challenge.Store on the key-value cache.
// Historical challenges are retained indefinitely.
type ChallengeStore struct {
	cache  *Cache
	logger *logger.Logger
}

// NewChallengeStore creates a ChallengeStore.
func NewChallengeStore(cache *Cache, log *logger.Logger) *ChallengeStore {
	if log == nil {
		log = logger.Default()
	}
	return &ChallengeStore{
		cache:  cache,
		logger: log.With(logger.Component("challenge_store")),
	}
}

// Load returns every stored challenge, oldest first. Missing or
// unparsable bytes yield an empty list.
func (s *ChallengeStore) Load(ctx context.Context) ([]challenge.DailyChallenge, error) {
	var challenges []challenge.DailyChallenge
	err := s.cache.Get(ctx, KeyChallenges, &challenges)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return []challenge.DailyChallenge{}, nil
		}
		if errors.Is(err, ErrCacheSerialization) {
			s.logger.Warn("stored challenges unparsable, discarding", logger.Err(err))
			return []challenge.DailyChallenge{}, nil
		}
		return nil, err
	}
	return challenges, nil
}

// Save replaces the stored challenge list.
func (s *ChallengeStore) Save(ctx context.Context, challenges []challenge.DailyChallenge) error {
	return s.cache.Set(ctx, KeyChallenges, challenges, 0)
}

var _ challenge.Store = (*ChallengeStore)(nil)
