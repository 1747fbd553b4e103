package messaging

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbrain-hub/quickbrain-progress-hub/internal/domain/shared"
)

type countingHandler struct {
	name   string
	events []shared.Event
	err    error
}

func (h *countingHandler) Handle(event shared.Event) error {
	h.events = append(h.events, event)
	return h.err
}

func (h *countingHandler) Name() string { return h.name }

func quietSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func xpEvent() shared.XPGainedEvent {
	return shared.XPGainedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventXPGained, "user"),
		Points:    50,
	}
}

func TestPublish_DeliversToSubscribedType(t *testing.T) {
	bus := NewInMemoryEventBus(quietSlog())
	xp := &countingHandler{name: "xp"}
	level := &countingHandler{name: "level"}
	require.NoError(t, bus.Subscribe(shared.EventXPGained, xp))
	require.NoError(t, bus.Subscribe(shared.EventLevelUp, level))

	require.NoError(t, bus.Publish(xpEvent()))

	assert.Len(t, xp.events, 1)
	assert.Empty(t, level.events)
}

func TestPublish_DeliversToGlobalHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(quietSlog())
	all := &countingHandler{name: "audit"}
	require.NoError(t, bus.SubscribeAll(all))

	require.NoError(t, bus.Publish(xpEvent()))
	require.NoError(t, bus.Publish(shared.LevelUpEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventLevelUp, "user"),
		OldLevel:  1,
		NewLevel:  2,
	}))

	assert.Len(t, all.events, 2)
}

func TestPublish_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(quietSlog())
	failing := &countingHandler{name: "failing", err: errors.New("boom")}
	healthy := &countingHandler{name: "healthy"}
	require.NoError(t, bus.Subscribe(shared.EventXPGained, failing))
	require.NoError(t, bus.Subscribe(shared.EventXPGained, healthy))

	err := bus.Publish(xpEvent())

	assert.NoError(t, err)
	assert.Len(t, healthy.events, 1)
}

func TestSubscribe_NilHandlerRejected(t *testing.T) {
	bus := NewInMemoryEventBus(quietSlog())

	assert.Error(t, bus.Subscribe(shared.EventXPGained, nil))
	assert.Error(t, bus.SubscribeAll(nil))
}

func TestClose_RejectsFurtherUse(t *testing.T) {
	bus := NewInMemoryEventBus(quietSlog())
	bus.Close()

	assert.ErrorIs(t, bus.Publish(xpEvent()), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Subscribe(shared.EventXPGained, &countingHandler{name: "late"}), ErrEventBusClosed)
}
