package query

import (
	"context"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/game"
	"github.com/quickbrain-hub/quickbrain-progress-hub/pkg/logger"
)

// GameStats summarizes play history for one game.
type GameStats struct {
	GameID       string  `json:"game_id"`
	BestScore    int     `json:"best_score"`
	SessionCount int     `json:"session_count"`
	AvgAccuracy  float64 `json:"avg_accuracy"`
}

// StatsOverview summarizes the full play history.
type StatsOverview struct {
	SessionCount    int         `json:"session_count"`
	TotalScore      int         `json:"total_score"`
	PerfectSessions int         `json:"perfect_sessions"`
	PerGame         []GameStats `json:"per_game"`
}

// GetStatisticsHandler answers history questions: best score per game,
// session history, and the overall overview. Reads prefer the durable
// session archive and fall back to the session log when no archive is
// configured.
type GetStatisticsHandler struct {
	catalog  *game.Catalog
	sessions game.SessionLog
	archive  game.SessionArchive // may be nil
	logger   *logger.Logger
}

// NewGetStatisticsHandler creates a GetStatisticsHandler.
func NewGetStatisticsHandler(catalog *game.Catalog, sessions game.SessionLog, archive game.SessionArchive, log *logger.Logger) *GetStatisticsHandler {
	if log == nil {
		log = logger.Default()
	}
	return &GetStatisticsHandler{
		catalog:  catalog,
		sessions: sessions,
		archive:  archive,
		logger:   log.With(logger.Component("statistics")),
	}
}

// BestScore returns the highest score recorded for a game, 0 if none.
func (h *GetStatisticsHandler) BestScore(ctx context.Context, gameID string) int {
	if h.archive != nil {
		best, err := h.archive.BestScore(ctx, gameID)
		if err == nil {
			return best
		}
		h.logger.Warn("archive best score failed, falling back to log", logger.Err(err))
	}

	best := 0
	for _, s := range h.loadLog(ctx) {
		if s.GameID == gameID && s.Score > best {
			best = s.Score
		}
	}
	return best
}

// SessionsForGame returns sessions for a game, newest first, up to limit.
func (h *GetStatisticsHandler) SessionsForGame(ctx context.Context, gameID string, limit int) []game.Session {
	if h.archive != nil {
		sessions, err := h.archive.ListByGame(ctx, gameID, limit)
		if err == nil {
			return sessions
		}
		h.logger.Warn("archive list failed, falling back to log", logger.Err(err))
	}

	all := h.loadLog(ctx)
	out := make([]game.Session, 0, limit)
	for i := len(all) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if all[i].GameID == gameID {
			out = append(out, all[i])
		}
	}
	return out
}

// Overview builds the full statistics overview from the session log.
func (h *GetStatisticsHandler) Overview(ctx context.Context) StatsOverview {
	all := h.loadLog(ctx)

	overview := StatsOverview{SessionCount: len(all)}

	type acc struct {
		best     int
		count    int
		accuracy float64
	}
	perGame := make(map[string]*acc)

	for _, s := range all {
		overview.TotalScore += s.Score
		if s.IsPerfect() {
			overview.PerfectSessions++
		}
		a, ok := perGame[s.GameID]
		if !ok {
			a = &acc{}
			perGame[s.GameID] = a
		}
		if s.Score > a.best {
			a.best = s.Score
		}
		a.count++
		a.accuracy += s.Accuracy()
	}

	for _, g := range h.catalog.Games() {
		a, ok := perGame[g.ID]
		if !ok {
			continue
		}
		overview.PerGame = append(overview.PerGame, GameStats{
			GameID:       g.ID,
			BestScore:    a.best,
			SessionCount: a.count,
			AvgAccuracy:  a.accuracy / float64(a.count),
		})
	}

	return overview
}

func (h *GetStatisticsHandler) loadLog(ctx context.Context) []game.Session {
	sessions, err := h.sessions.Load(ctx)
	if err != nil {
		h.logger.Warn("session load failed", logger.Err(err))
		return nil
	}
	return sessions
}
