// Package http implements the REST API for QuickBrain Progress Hub.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/application/command"
	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "QuickBrain Progress Hub API",
		"version":     "v1",
		"description": "Progress, achievement, and daily challenge engine for QuickBrain mini-games",
		"endpoints": map[string]string{
			"health":       "/health",
			"progress":     "/api/v1/progress",
			"achievements": "/api/v1/achievements",
			"challenges":   "/api/v1/challenges/today",
			"games":        "/api/v1/games",
			"stats":        "/api/v1/stats",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint. Reports each backing
// component; unhealthy components degrade the status but the engine keeps
// serving from memory, so the endpoint stays 200 unless nothing responds.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]string, len(s.deps.Pingers))
	healthy := 0
	for _, p := range s.deps.Pingers {
		if err := p.Pinger.Ping(r.Context()); err != nil {
			components[p.Name] = "unreachable"
			continue
		}
		components[p.Name] = "ok"
		healthy++
	}

	status := "healthy"
	code := http.StatusOK
	if len(s.deps.Pingers) > 0 && healthy == 0 {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else if healthy < len(s.deps.Pingers) {
		status = "degraded"
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"uptime":     s.Uptime().String(),
		"components": components,
	})
}

// handleLive handles the liveness probe endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type startSessionRequest struct {
	GameID       string `json:"game_id"`
	DifficultyID string `json:"difficulty_id"`
}

type endSessionRequest struct {
	Score            int       `json:"score"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	ReactionTimes    []float64 `json:"reaction_times,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
}

// handleStartSession handles POST /api/v1/sessions/start
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.GameID == "" || req.DifficultyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "game_id and difficulty_id are required")
		return
	}

	session, err := s.deps.Recorder.StartSession(r.Context(), command.StartSessionCommand{
		GameID:       req.GameID,
		DifficultyID: req.DifficultyID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// handleEndSession handles POST /api/v1/sessions/end
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	var req endSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Score < 0 || req.CorrectAnswers < 0 || req.IncorrectAnswers < 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "counters cannot be negative")
		return
	}

	result, err := s.deps.Recorder.EndSession(r.Context(), command.EndSessionCommand{
		Score:         req.Score,
		Correct:       req.CorrectAnswers,
		Incorrect:     req.IncorrectAnswers,
		ReactionTimes: req.ReactionTimes,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":     result.Session,
		"accuracy":    result.Accuracy,
		"performance": result.Performance,
	})
}

// handleActiveSession handles GET /api/v1/sessions/active
func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.deps.Recorder.Active()
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "No session in progress")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS & ACHIEVEMENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetProgress handles GET /api/v1/progress
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetProgressHandler.Handle())
}

// handleGetAchievements handles GET /api/v1/achievements
func (s *Server) handleGetAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetAchievementsHandler.Handle(r.Context()))
}

// handleCheckAchievements handles POST /api/v1/achievements/check
func (s *Server) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	result := s.deps.Achievements.CheckAchievements(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluated":    result.Evaluated,
		"unlocked":     result.Unlocked,
		"reward_total": result.RewardTotal,
		"checked_at":   result.CheckedAt,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// CHALLENGE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleTodayChallenge handles GET /api/v1/challenges/today.
// Generates today's challenge on first access.
func (s *Server) handleTodayChallenge(w http.ResponseWriter, r *http.Request) {
	ch, err := s.deps.Challenges.GenerateTodayChallengeIfNeeded(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

// handleChallengeHistory handles GET /api/v1/challenges
func (s *Server) handleChallengeHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Challenges.History(r.Context()))
}

// ══════════════════════════════════════════════════════════════════════════════
// GAME & STATISTICS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListGames handles GET /api/v1/games
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Catalog.Games())
}

// handleGameStats handles GET /api/v1/games/{id}/stats
func (s *Server) handleGameStats(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	if _, ok := s.deps.Catalog.Get(gameID); !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "Game not found")
		return
	}

	limit := getQueryParamInt(r, "limit", 20)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":    gameID,
		"best_score": s.deps.GetStatisticsHandler.BestScore(r.Context(), gameID),
		"sessions":   s.deps.GetStatisticsHandler.SessionsForGame(r.Context(), gameID, limit),
	})
}

// handleGetStats handles GET /api/v1/stats
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetStatisticsHandler.Overview(r.Context()))
}

// ══════════════════════════════════════════════════════════════════════════════
// JSON RESPONSE TYPES AND HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// JSONResponse is the standard response envelope.
type JSONResponse struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *APIError     `json:"error,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta contains response metadata.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	response := JSONResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Meta: &ResponseMeta{
			Timestamp: time.Now().UTC(),
			Version:   "v1",
		},
	}

	_ = json.NewEncoder(w).Encode(response)
}

// writeJSONError writes an error JSON response.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	response := JSONResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &ResponseMeta{
			Timestamp: time.Now().UTC(),
		},
	}

	_ = json.NewEncoder(w).Encode(response)
}

// writeDomainError maps domain errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "conflict", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

// decodeJSON decodes the request body, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return false
	}
	return true
}

// getQueryParamInt parses an integer query parameter with a default.
func getQueryParamInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
