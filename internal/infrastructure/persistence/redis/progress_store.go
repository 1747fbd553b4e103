package redis

import (
	"context"
	"errors"
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/progress"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ProgressStore implements progress.Store on the key-value cache.
//
// Loads never surface corruption: missing or unparsable bytes yield nil
// so the caller substitutes fresh defaults.
type ProgressStore struct {
	cache  *Cache
	logger *logger.Logger
}

// NewProgressStore creates a ProgressStore.
func NewProgressStore(cache *Cache, log *logger.Logger) *ProgressStore {
	if log == nil {
		log = logger.Default()
	}
	return &ProgressStore{
		cache:  cache,
		logger: log.With(logger.Component("progress_store")),
	}
}

// LoadProgress returns the stored record, or nil when absent or unparsable.
func (s *ProgressStore) LoadProgress(ctx context.Context) (*progress.UserProgress, error) {
	var rec progress.UserProgress
	err := s.cache.Get(ctx, KeyProgress, &rec)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, nil
		}
		if errors.Is(err, ErrCacheSerialization) {
			s.logger.Warn("stored progress unparsable, discarding", logger.Err(err))
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SaveProgress persists the record without expiry.
func (s *ProgressStore) SaveProgress(ctx context.Context, p *progress.UserProgress) error {
	return s.cache.Set(ctx, KeyProgress, p, 0)
}

// LoadLastPlayDate returns the stored timestamp, or nil when absent or
// unparsable.
func (s *ProgressStore) LoadLastPlayDate(ctx context.Context) (*time.Time, error) {
	raw, err := s.cache.GetString(ctx, KeyLastPlayDate)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		s.logger.Warn("stored last play date unparsable, discarding", logger.Err(err))
		return nil, nil
	}
	return &t, nil
}

// SaveLastPlayDate stamps the timestamp without expiry.
func (s *ProgressStore) SaveLastPlayDate(ctx context.Context, t time.Time) error {
	return s.cache.SetString(ctx, KeyLastPlayDate, t.Format(time.RFC3339Nano), 0)
}

var _ progress.Store = (*ProgressStore)(nil)
