// Package postgres implements the PostgreSQL session archive for
// QuickBrain Progress Hub.
package postgres

import (
	"context"
	"fmt"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION ARCHIVE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SessionArchive implements game.SessionArchive for PostgreSQL.
type SessionArchive struct {
	conn *Connection
}

// NewSessionArchive creates a new SessionArchive.
func NewSessionArchive(conn *Connection) *SessionArchive {
	return &SessionArchive{conn: conn}
}

// Append stores one finished session. Re-appending the same session ID is
// a no-op so retries stay safe.
func (a *SessionArchive) Append(ctx context.Context, s game.Session) error {
	query := `
		INSERT INTO game_sessions (
			id, game_id, difficulty_id, started_at, ended_at,
			score, max_score, correct_answers, incorrect_answers,
			reaction_times, notes, accuracy
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`

	reactionTimes := s.ReactionTimes
	if reactionTimes == nil {
		reactionTimes = []float64{}
	}

	_, err := a.conn.Exec(ctx, query,
		s.ID,
		s.GameID,
		s.DifficultyID,
		s.StartTime,
		s.EndTime,
		s.Score,
		s.MaxScore,
		s.Correct,
		s.Incorrect,
		reactionTimes,
		s.Notes,
		s.Accuracy(),
	)
	if err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}

	return nil
}

// BestScore returns the highest score recorded for a game, 0 if none.
func (a *SessionArchive) BestScore(ctx context.Context, gameID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(score), 0)
		FROM game_sessions
		WHERE game_id = $1
	`

	var best int
	if err := a.conn.QueryRow(ctx, query, gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("failed to query best score: %w", err)
	}
	return best, nil
}

// ListByGame returns sessions for a game, newest first, up to limit.
func (a *SessionArchive) ListByGame(ctx context.Context, gameID string, limit int) ([]game.Session, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, game_id, difficulty_id, started_at, ended_at,
			   score, max_score, correct_answers, incorrect_answers,
			   reaction_times, notes
		FROM game_sessions
		WHERE game_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`

	rows, err := a.conn.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]game.Session, 0, limit)
	for rows.Next() {
		var s game.Session
		if err := rows.Scan(
			&s.ID,
			&s.GameID,
			&s.DifficultyID,
			&s.StartTime,
			&s.EndTime,
			&s.Score,
			&s.MaxScore,
			&s.Correct,
			&s.Incorrect,
			&s.ReactionTimes,
			&s.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// CountPerfect returns the number of sessions with 100% accuracy.
func (a *SessionArchive) CountPerfect(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM game_sessions
		WHERE accuracy >= 100
	`

	var count int
	if err := a.conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count perfect sessions: %w", err)
	}
	return count, nil
}

// Totals returns the number of archived sessions and their summed score.
func (a *SessionArchive) Totals(ctx context.Context) (int, int, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(score), 0)
		FROM game_sessions
	`

	var count, totalScore int
	if err := a.conn.QueryRow(ctx, query).Scan(&count, &totalScore); err != nil {
		return 0, 0, fmt.Errorf("failed to query session totals: %w", err)
	}
	return count, totalScore, nil
}

var _ game.SessionArchive = (*SessionArchive)(nil)
