package achievement

import (
	"context"
)

// Store persists the achievement list.
//
// Load returns the seed catalog when nothing is stored or the stored
// bytes are unparsable; it never surfaces a decode error to the caller.
type Store interface {
	// Load returns the stored achievements, or the seed catalog.
	Load(ctx context.Context) ([]Achievement, error)

	// Save replaces the stored achievement list.
	Save(ctx context.Context, achievements []Achievement) error
}
