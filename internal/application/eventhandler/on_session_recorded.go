// Package eventhandler contains domain event handlers. Handlers are the
// reactive part of the system: they subscribe on the event bus and run
// side effects such as maintaining operational counters, keeping the
// command path free of telemetry concerns.
package eventhandler

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON SESSION RECORDED HANDLER
// Bumps the per-day play counter whenever a session is recorded.
// ═══════════════════════════════════════════════════════════════════════════

// Counters is the counter sink the handler writes to.
type Counters interface {
	IncrementSessions(ctx context.Context, day time.Time) (int64, error)
}

// OnSessionRecordedHandler maintains daily play counters from
// session.recorded events.
type OnSessionRecordedHandler struct {
	counters Counters
	logger   *slog.Logger

	// timeout bounds each counter write, since the bus delivers
	// synchronously on the command path.
	timeout time.Duration
}

// NewOnSessionRecordedHandler creates the handler.
func NewOnSessionRecordedHandler(counters Counters, logger *slog.Logger) *OnSessionRecordedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnSessionRecordedHandler{
		counters: counters,
		logger:   logger.With(slog.String("handler", "on_session_recorded")),
		timeout:  2 * time.Second,
	}
}

// Name identifies the handler on the bus.
func (h *OnSessionRecordedHandler) Name() string {
	return "on_session_recorded"
}

// Handle increments the counter for the day the session was recorded on.
// Counter failures are logged and swallowed: telemetry must never fail
// the command path.
func (h *OnSessionRecordedHandler) Handle(event shared.Event) error {
	if event.EventType() != shared.EventSessionRecorded {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	n, err := h.counters.IncrementSessions(ctx, event.OccurredAt())
	if err != nil {
		h.logger.Warn("failed to increment daily session counter",
			slog.String("error", err.Error()))
		return nil
	}

	h.logger.Debug("daily session counter incremented",
		slog.Int64("count", n),
		slog.String("day", event.OccurredAt().Format("2006-01-02")))
	return nil
}

var _ shared.EventHandler = (*OnSessionRecordedHandler)(nil)
