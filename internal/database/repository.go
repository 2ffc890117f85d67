package database

import (
	"context"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// SettingsRepository persists user-tunable configuration across restarts.
// Load methods return nil when nothing was stored yet; callers fall back to
// the embedded defaults.
type SettingsRepository interface {
	// LoadScoring retrieves the persisted scoring policy, nil if unset
	LoadScoring(ctx context.Context) (*dedupe.ScoringConfig, error)
	// SaveScoring stores the scoring policy, replacing any previous one
	SaveScoring(ctx context.Context, cfg dedupe.ScoringConfig) error
	// LoadExclude retrieves the persisted exclusion filter, nil if unset
	LoadExclude(ctx context.Context) (*dedupe.ExcludeConfig, error)
	// SaveExclude stores the exclusion filter, replacing any previous one
	SaveExclude(ctx context.Context, cfg dedupe.ExcludeConfig) error
}

// SelectionStateRepository mirrors the in-memory selection state. Writes are
// best-effort from the core's point of view; a lost write is repaired by the
// next push.
type SelectionStateRepository interface {
	// Save replaces the mirrored state
	Save(ctx context.Context, state SelectionState) error
	// Load retrieves the mirrored state, nil if never pushed
	Load(ctx context.Context) (*SelectionState, error)
	// Clear removes the mirrored state
	Clear(ctx context.Context) error
}
