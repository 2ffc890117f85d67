package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/metalingusman/immich-deduper/internal/database"
)

// SelectionRepository provides PostgreSQL-backed selection-state mirroring.
// A single fixed row holds the latest snapshot; every push replaces it.
type SelectionRepository struct {
	pool *Pool
}

// NewSelectionRepository creates a new PostgreSQL selection repository
func NewSelectionRepository(pool *Pool) *SelectionRepository {
	return &SelectionRepository{pool: pool}
}

// Save replaces the mirrored state
func (r *SelectionRepository) Save(ctx context.Context, state database.SelectionState) error {
	ids, err := json.Marshal(state.SelectedIDs)
	if err != nil {
		return fmt.Errorf("encode selected ids: %w", err)
	}

	query := `
		INSERT INTO selection_state (id, cnt_total, selected_ids, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			cnt_total = EXCLUDED.cnt_total,
			selected_ids = EXCLUDED.selected_ids,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, state.CntTotal, ids); err != nil {
		return fmt.Errorf("save selection state: %w", err)
	}
	return nil
}

// Load retrieves the mirrored state, nil if never pushed
func (r *SelectionRepository) Load(ctx context.Context) (*database.SelectionState, error) {
	query := "SELECT cnt_total, selected_ids, updated_at FROM selection_state WHERE id = 1"

	var state database.SelectionState
	var ids []byte
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, query).Scan(&state.CntTotal, &ids, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load selection state: %w", err)
	}

	if err := json.Unmarshal(ids, &state.SelectedIDs); err != nil {
		return nil, fmt.Errorf("decode selected ids: %w", err)
	}
	state.UpdatedAt = updatedAt
	return &state, nil
}

// Clear removes the mirrored state
func (r *SelectionRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM selection_state WHERE id = 1"); err != nil {
		return fmt.Errorf("clear selection state: %w", err)
	}
	return nil
}

// Push implements the mirror contract consumed by the selection store. Each
// push captures a full snapshot, so a lost write is repaired by the next one.
func (r *SelectionRepository) Push(total int, selectedIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return r.Save(ctx, database.SelectionState{
		CntTotal:    total,
		SelectedIDs: selectedIDs,
	})
}
