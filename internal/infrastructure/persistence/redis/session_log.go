package redis

import (
	"context"
	"errors"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// SessionLog implements game.SessionLog on the key-value cache. The whole
// list lives under one key and is replaced on every append, mirroring the
// load-modify-save cycle of the original client storage.
type SessionLog struct {
	cache  *Cache
	logger *logger.Logger
}

// NewSessionLog creates a SessionLog.
func NewSessionLog(cache *Cache, log *logger.Logger) *SessionLog {
	if log == nil {
		log = logger.Default()
	}
	return &SessionLog{
		cache:  cache,
		logger: log.With(logger.Component("session_log")),
	}
}

// Load returns every recorded session, oldest first. Missing or
// unparsable bytes yield an empty list.
func (s *SessionLog) Load(ctx context.Context) ([]game.Session, error) {
	var sessions []game.Session
	err := s.cache.Get(ctx, KeySessions, &sessions)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return []game.Session{}, nil
		}
		if errors.Is(err, ErrCacheSerialization) {
			s.logger.Warn("stored session log unparsable, discarding", logger.Err(err))
			return []game.Session{}, nil
		}
		return nil, err
	}
	return sessions, nil
}

// Save replaces the stored session list.
func (s *SessionLog) Save(ctx context.Context, sessions []game.Session) error {
	return s.cache.Set(ctx, KeySessions, sessions, 0)
}

// Append adds one session to the log.
func (s *SessionLog) Append(ctx context.Context, session game.Session) error {
	sessions, err := s.Load(ctx)
	if err != nil {
		return err
	}
	sessions = append(sessions, session)
	return s.Save(ctx, sessions)
}

var _ game.SessionLog = (*SessionLog)(nil)
