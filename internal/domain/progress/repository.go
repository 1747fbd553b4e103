package progress

import (
	"context"
	"time"
)

// Store persists the singleton progress record and the last-play date.
//
// Loads degrade gracefully: missing or unparsable bytes yield (nil, nil)
// so the caller substitutes fresh defaults. Errors are reserved for
// transport failures and even then callers treat them as a miss.
type Store interface {
	// LoadProgress returns the stored record, or nil if none exists.
	LoadProgress(ctx context.Context) (*UserProgress, error)

	// SaveProgress persists the record. Fire-and-forget semantics: the
	// in-memory record stays authoritative if the write fails.
	SaveProgress(ctx context.Context, p *UserProgress) error

	// LoadLastPlayDate returns the last recorded play timestamp, or nil.
	LoadLastPlayDate(ctx context.Context) (*time.Time, error)

	// SaveLastPlayDate stamps the last recorded play timestamp.
	SaveLastPlayDate(ctx context.Context, t time.Time) error
}
