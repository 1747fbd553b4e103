package challenge

import (
	"context"
)

// Store persists the full challenge history.
//
// Loads degrade gracefully to an empty list on missing or unparsable bytes.
type Store interface {
	// Load returns every stored challenge, oldest first.
	Load(ctx context.Context) ([]DailyChallenge, error)

	// Save replaces the stored challenge list.
	Save(ctx context.Context, challenges []DailyChallenge) error
}
