// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/ledger"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION RECORDER
// Receives session lifecycle calls from mini-game clients: exactly one
// StartSession followed by exactly one EndSession. EndSession persists the
// finished session, feeds the progress ledger, and notifies the challenge
// engine of the finishing game and score.
// ══════════════════════════════════════════════════════════════════════════════

// ChallengeChecker is notified of every finished session so today's
// challenge can be completed when the score qualifies.
type ChallengeChecker interface {
	CheckCompletion(ctx context.Context, gameID string, score int)
}

// StartSessionCommand opens a new session for a game and difficulty.
type StartSessionCommand struct {
	GameID       string
	DifficultyID string
}

// EndSessionCommand closes the active session with the final counters.
// ReactionTimes is optional (milliseconds); Notes is optional.
type EndSessionCommand struct {
	Score         int
	Correct       int
	Incorrect     int
	ReactionTimes []float64
	Notes         *string
}

// EndSessionResult describes the recorded session.
type EndSessionResult struct {
	Session     game.Session
	Accuracy    float64
	Performance float64
}

// SessionRecorder tracks the single in-progress session and records it on
// end. Operations that require an active game or difficulty are no-ops
// (returned as domain errors the HTTP layer maps to a client response,
// never a crash).
type SessionRecorder struct {
	mu sync.Mutex

	catalog   *game.Catalog
	log       game.SessionLog
	archive   game.SessionArchive // optional
	ledger    *ledger.Ledger
	challenge ChallengeChecker
	bus       shared.EventPublisher
	logger    *logger.Logger
	now       func() time.Time

	active *game.Session
}

// SessionRecorderConfig contains the recorder dependencies.
type SessionRecorderConfig struct {
	Catalog   *game.Catalog
	Log       game.SessionLog
	Archive   game.SessionArchive // may be nil
	Ledger    *ledger.Ledger
	Challenge ChallengeChecker // may be nil
	Publisher shared.EventPublisher
	Logger    *logger.Logger
	Now       func() time.Time
}

// NewSessionRecorder creates a SessionRecorder.
func NewSessionRecorder(cfg SessionRecorderConfig) *SessionRecorder {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &SessionRecorder{
		catalog:   cfg.Catalog,
		log:       cfg.Log,
		archive:   cfg.Archive,
		ledger:    cfg.Ledger,
		challenge: cfg.Challenge,
		bus:       cfg.Publisher,
		logger:    cfg.Logger.With(logger.Component("session_recorder")),
		now:       cfg.Now,
	}
}

// StartSession opens a session for the given game and difficulty.
// The session's MaxScore is the difficulty's target score.
func (r *SessionRecorder) StartSession(ctx context.Context, cmd StartSessionCommand) (game.Session, error) {
	g, ok := r.catalog.Get(cmd.GameID)
	if !ok {
		return game.Session{}, shared.ErrGameNotFound
	}
	d, ok := g.Difficulty(cmd.DifficultyID)
	if !ok {
		return game.Session{}, shared.ErrDifficultyNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return game.Session{}, shared.ErrSessionActive
	}

	now := r.now()
	session := game.Session{
		ID:           uuid.NewString(),
		GameID:       g.ID,
		DifficultyID: d.ID,
		StartTime:    now,
		EndTime:      now,
		MaxScore:     d.TargetScore,
	}
	r.active = &session

	r.logger.Info("session started",
		logger.SessionID(session.ID),
		logger.GameID(g.ID),
		logger.DifficultyID(d.ID))

	r.publish(shared.SessionStartedEvent{
		BaseEvent:    shared.NewBaseEvent(shared.EventSessionStarted, session.ID),
		GameID:       g.ID,
		DifficultyID: d.ID,
	})

	return session, nil
}

// EndSession finalizes the active session, appends it to the session log,
// feeds the progress ledger, and notifies the challenge engine. Scores are
// not validated against MaxScore - they may exceed it.
func (r *SessionRecorder) EndSession(ctx context.Context, cmd EndSessionCommand) (EndSessionResult, error) {
	r.mu.Lock()
	if r.active == nil {
		r.mu.Unlock()
		return EndSessionResult{}, shared.ErrNoActiveSession
	}

	session := *r.active
	session.EndTime = r.now()
	session.Score = cmd.Score
	session.Correct = cmd.Correct
	session.Incorrect = cmd.Incorrect
	session.ReactionTimes = cmd.ReactionTimes
	session.Notes = cmd.Notes

	r.active = nil
	r.mu.Unlock()

	if err := r.log.Append(ctx, session); err != nil {
		r.logger.Error("session append failed", logger.SessionID(session.ID), logger.Err(err))
	}
	if r.archive != nil {
		if err := r.archive.Append(ctx, session); err != nil {
			// Best-effort sink; the session log stays the source of truth.
			r.logger.Warn("session archive append failed", logger.SessionID(session.ID), logger.Err(err))
		}
	}

	var targetSkills []game.CognitiveSkill
	if g, ok := r.catalog.Get(session.GameID); ok {
		targetSkills = g.TargetSkills
	}
	r.ledger.RecordSession(ctx, session, targetSkills)

	if r.challenge != nil {
		r.challenge.CheckCompletion(ctx, session.GameID, session.Score)
	}

	result := EndSessionResult{
		Session:     session,
		Accuracy:    session.Accuracy(),
		Performance: session.PerformanceScore(),
	}

	r.logger.Info("session recorded",
		logger.SessionID(session.ID),
		logger.GameID(session.GameID),
		logger.Score(session.Score),
		logger.Float64("accuracy", result.Accuracy))

	r.publish(shared.SessionRecordedEvent{
		BaseEvent:    shared.NewBaseEvent(shared.EventSessionRecorded, session.ID),
		GameID:       session.GameID,
		DifficultyID: session.DifficultyID,
		Score:        session.Score,
		Accuracy:     result.Accuracy,
		Performance:  result.Performance,
	})

	return result, nil
}

// Active returns a copy of the in-progress session, if any.
func (r *SessionRecorder) Active() (game.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return game.Session{}, false
	}
	return *r.active, true
}

func (r *SessionRecorder) publish(event shared.Event) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(event); err != nil {
		r.logger.Warn("event publish failed",
			logger.String("event", string(event.EventType())), logger.Err(err))
	}
}
