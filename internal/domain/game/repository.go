package game

import (
	"context"
)

// SessionLog is the append-only store of finished sessions.
//
// Implementations degrade gracefully: a load over missing or unparsable
// bytes returns an empty list, never an error the caller must handle.
type SessionLog interface {
	// Load returns every recorded session, oldest first.
	Load(ctx context.Context) ([]Session, error)

	// Save replaces the stored session list.
	Save(ctx context.Context, sessions []Session) error

	// Append adds one finished session to the log.
	Append(ctx context.Context, session Session) error
}

// SessionArchive is a durable secondary sink for finished sessions with
// aggregate queries over the full history. Writes are best-effort; the
// session log above remains the source of truth for the core engine.
type SessionArchive interface {
	// Append stores one finished session.
	Append(ctx context.Context, session Session) error

	// BestScore returns the highest score recorded for a game (0 if none).
	BestScore(ctx context.Context, gameID string) (int, error)

	// ListByGame returns sessions for a game, newest first, up to limit.
	ListByGame(ctx context.Context, gameID string, limit int) ([]Session, error)

	// CountPerfect returns the number of sessions with 100% accuracy.
	CountPerfect(ctx context.Context) (int, error)

	// Totals returns the number of archived sessions and their summed score.
	Totals(ctx context.Context) (count int, totalScore int, err error)
}
