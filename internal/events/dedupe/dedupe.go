// Package dedupe tracks which event ids a consumer has already processed.
// The channel delivers at least once; handlers consult a Store before acting
// so a redelivered event becomes a no-op instead of a double side effect.
package dedupe

import "context"

// Store records event ids. FirstSeen returns true exactly once per id within
// the retention window; subsequent calls for the same id return false.
type Store interface {
	FirstSeen(ctx context.Context, eventID string) (bool, error)
}
