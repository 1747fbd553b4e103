// Package shared contains common domain types, errors, and events
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Session events
	EventSessionStarted  EventType = "session.started"
	EventSessionRecorded EventType = "session.recorded"

	// Progress events. A broken streak rides on EventStreakUpdated via
	// StreakUpdatedEvent.Broken rather than a separate event type.
	EventXPGained      EventType = "progress.xp_gained"
	EventLevelUp       EventType = "progress.level_up"
	EventStreakUpdated EventType = "progress.streak_updated"
	EventSkillLevelUp  EventType = "progress.skill_level_up"

	// Challenge events
	EventChallengeGenerated EventType = "challenge.generated"
	EventChallengeCompleted EventType = "challenge.completed"

	// Achievement events
	EventAchievementUnlocked EventType = "achievement.unlocked"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// EventHandler processes domain events.
type EventHandler interface {
	// Handle processes the event. Errors are logged by the bus, not propagated.
	Handle(event Event) error

	// Name returns the handler name for logging.
	Name() string
}

// EventPublisher publishes domain events to interested subscribers.
type EventPublisher interface {
	Publish(event Event) error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}

// SessionStartedEvent is emitted when a mini-game opens a session.
type SessionStartedEvent struct {
	BaseEvent
	GameID       string `json:"game_id"`
	DifficultyID string `json:"difficulty_id"`
}

// Payload implements Event interface.
func (e SessionStartedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"game_id":       e.GameID,
		"difficulty_id": e.DifficultyID,
	}
}

// SessionRecordedEvent is emitted when a finished game session is persisted.
type SessionRecordedEvent struct {
	BaseEvent
	GameID       string  `json:"game_id"`
	DifficultyID string  `json:"difficulty_id"`
	Score        int     `json:"score"`
	Accuracy     float64 `json:"accuracy"`
	Performance  float64 `json:"performance"`
}

// Payload implements Event interface.
func (e SessionRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"game_id":       e.GameID,
		"difficulty_id": e.DifficultyID,
		"score":         e.Score,
		"accuracy":      e.Accuracy,
		"performance":   e.Performance,
	}
}

// XPGainedEvent is emitted when experience points are awarded.
type XPGainedEvent struct {
	BaseEvent
	Points   int    `json:"points"`
	TotalXP  int    `json:"total_xp"`
	Level    int    `json:"level"`
	Source   string `json:"source"` // "session", "challenge", "achievement"
	SourceID string `json:"source_id,omitempty"`
}

// Payload implements Event interface.
func (e XPGainedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"points":    e.Points,
		"total_xp":  e.TotalXP,
		"level":     e.Level,
		"source":    e.Source,
		"source_id": e.SourceID,
	}
}

// LevelUpEvent is emitted when the player reaches a new level.
type LevelUpEvent struct {
	BaseEvent
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

// Payload implements Event interface.
func (e LevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_level": e.OldLevel,
		"new_level": e.NewLevel,
	}
}

// StreakUpdatedEvent is emitted when the daily streak changes.
type StreakUpdatedEvent struct {
	BaseEvent
	CurrentStreak int  `json:"current_streak"`
	BestStreak    int  `json:"best_streak"`
	Broken        bool `json:"broken"`
}

// Payload implements Event interface.
func (e StreakUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"current_streak": e.CurrentStreak,
		"best_streak":    e.BestStreak,
		"broken":         e.Broken,
	}
}

// SkillLevelUpEvent is emitted when a cognitive skill reaches a new level.
type SkillLevelUpEvent struct {
	BaseEvent
	Skill    string `json:"skill"`
	NewLevel int    `json:"new_level"`
}

// Payload implements Event interface.
func (e SkillLevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"skill":     e.Skill,
		"new_level": e.NewLevel,
	}
}

// ChallengeGeneratedEvent is emitted when a new daily challenge is created.
type ChallengeGeneratedEvent struct {
	BaseEvent
	GameID      string `json:"game_id"`
	TargetScore int    `json:"target_score"`
	Reward      int    `json:"reward"`
}

// Payload implements Event interface.
func (e ChallengeGeneratedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"game_id":      e.GameID,
		"target_score": e.TargetScore,
		"reward":       e.Reward,
	}
}

// ChallengeCompletedEvent is emitted when today's challenge is completed.
type ChallengeCompletedEvent struct {
	BaseEvent
	GameID string `json:"game_id"`
	Score  int    `json:"score"`
	Reward int    `json:"reward"`
}

// Payload implements Event interface.
func (e ChallengeCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"game_id": e.GameID,
		"score":   e.Score,
		"reward":  e.Reward,
	}
}

// AchievementUnlockedEvent is emitted when an achievement is unlocked.
type AchievementUnlockedEvent struct {
	BaseEvent
	Name   string `json:"name"`
	Reward int    `json:"reward"`
}

// Payload implements Event interface.
func (e AchievementUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":   e.Name,
		"reward": e.Reward,
	}
}
