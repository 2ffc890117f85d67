package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// Settings keys. Each policy object is stored whole as one JSON value.
const (
	settingScoring = "scoring"
	settingExclude = "exclude"
)

// SettingsRepository provides PostgreSQL-backed settings storage
type SettingsRepository struct {
	pool *Pool
}

// NewSettingsRepository creates a new PostgreSQL settings repository
func NewSettingsRepository(pool *Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// get retrieves a raw setting value, reporting whether the key exists
func (r *SettingsRepository) get(ctx context.Context, key string) (string, bool, error) {
	var val string
	err := r.pool.QueryRow(ctx, "SELECT val FROM settings WHERE key = $1", key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return val, true, nil
}

// save stores a raw setting value, replacing any previous one
func (r *SettingsRepository) save(ctx context.Context, key, val string) error {
	query := `
		INSERT INTO settings (key, val, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			val = EXCLUDED.val,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query, key, val)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// LoadScoring retrieves the persisted scoring policy, nil if unset
func (r *SettingsRepository) LoadScoring(ctx context.Context) (*dedupe.ScoringConfig, error) {
	raw, ok, err := r.get(ctx, settingScoring)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var cfg dedupe.ScoringConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode stored scoring config: %w", err)
	}
	return &cfg, nil
}

// SaveScoring stores the scoring policy, replacing any previous one
func (r *SettingsRepository) SaveScoring(ctx context.Context, cfg dedupe.ScoringConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode scoring config: %w", err)
	}
	return r.save(ctx, settingScoring, string(raw))
}

// LoadExclude retrieves the persisted exclusion filter, nil if unset
func (r *SettingsRepository) LoadExclude(ctx context.Context) (*dedupe.ExcludeConfig, error) {
	raw, ok, err := r.get(ctx, settingExclude)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var cfg dedupe.ExcludeConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode stored exclude config: %w", err)
	}
	return &cfg, nil
}

// SaveExclude stores the exclusion filter, replacing any previous one
func (r *SettingsRepository) SaveExclude(ctx context.Context, cfg dedupe.ExcludeConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode exclude config: %w", err)
	}
	return r.save(ctx, settingExclude, string(raw))
}
