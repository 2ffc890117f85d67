package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/metalingusman/immich-deduper/internal/config"
	"github.com/metalingusman/immich-deduper/internal/constants"
	"github.com/metalingusman/immich-deduper/internal/database"
	"github.com/metalingusman/immich-deduper/internal/dedupe"
	"github.com/metalingusman/immich-deduper/internal/immich"
	"github.com/metalingusman/immich-deduper/internal/selection"
)

// DeduperHandler owns the deduplication surface: the candidate list, the
// scoring configuration, the selection core and the rendered-card registry.
type DeduperHandler struct {
	defaults config.DefaultsConfig
	settings database.SettingsRepository // nil without a database
	client   *immich.Immich             // nil without an Immich connection

	registry     *CardRegistry
	store        *selection.Store
	synchronizer *selection.Synchronizer
	recorder     *dedupe.Recorder

	mu      sync.Mutex
	scoring dedupe.ScoringConfig
	exclude dedupe.ExcludeConfig
	assets  []dedupe.Asset
}

// MemoryMirror is the in-process fallback mirror used when no database is
// configured. It keeps only the latest snapshot.
type MemoryMirror struct {
	mu    sync.Mutex
	state database.SelectionState
	set   bool
}

// Push implements the mirror contract.
func (m *MemoryMirror) Push(total int, selectedIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = database.SelectionState{CntTotal: total, SelectedIDs: selectedIDs}
	m.set = true
	return nil
}

// Last returns the latest snapshot, nil if never pushed.
func (m *MemoryMirror) Last() *database.SelectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil
	}
	state := m.state
	return &state
}

// NewDeduperHandler creates the handler and wires the selection core to the
// card registry and the mirror. Passing a nil mirror falls back to an
// in-memory one.
func NewDeduperHandler(cfg *config.Config, settings database.SettingsRepository, mirror selection.Mirror, client *immich.Immich) *DeduperHandler {
	if mirror == nil {
		mirror = &MemoryMirror{}
	}

	registry := NewCardRegistry()
	recorder := dedupe.NewRecorder()
	store := selection.NewStore(registry, mirror)

	h := &DeduperHandler{
		defaults:     cfg.Defaults,
		settings:     settings,
		client:       client,
		registry:     registry,
		store:        store,
		synchronizer: selection.NewSynchronizer(store, registry, recorder),
		recorder:     recorder,
		scoring:      cfg.Defaults.Weights,
		exclude:      cfg.Defaults.Exclude,
	}
	h.loadPersistedSettings()
	return h
}

// loadPersistedSettings overrides the embedded defaults with stored settings.
// A failed load keeps the defaults; a corrupt value must never block startup.
func (h *DeduperHandler) loadPersistedSettings() {
	if h.settings == nil {
		return
	}
	ctx := context.Background()

	scoring, err := h.settings.LoadScoring(ctx)
	if err != nil {
		log.Printf("settings: loading scoring config failed, using defaults: %v", err)
	} else if scoring != nil {
		h.scoring = *scoring
	}

	exclude, err := h.settings.LoadExclude(ctx)
	if err != nil {
		log.Printf("settings: loading exclude config failed, using defaults: %v", err)
	} else if exclude != nil {
		h.exclude = *exclude
	}
}

// Registry exposes the card registry (SSE wiring and tests).
func (h *DeduperHandler) Registry() *CardRegistry {
	return h.registry
}

// Store exposes the selection store (tests and batch callers).
func (h *DeduperHandler) Store() *selection.Store {
	return h.store
}

// Synchronizer exposes the evaluation synchronizer so callers can tune
// the card wait timing.
func (h *DeduperHandler) Synchronizer() *selection.Synchronizer {
	return h.synchronizer
}

// Dispose tears down any pending visual wait.
func (h *DeduperHandler) Dispose() {
	h.synchronizer.Dispose()
}

// pushRequest is the body of a candidate-list push.
type pushRequest struct {
	Assets []dedupe.Asset `json:"assets"`
}

// pushResponse reports the outcome of an evaluation pass.
type pushResponse struct {
	Accepted   int     `json:"accepted"`
	Candidates int     `json:"candidates"`
	Changed    bool    `json:"changed"`
	Selected   []int64 `json:"selectedIds"`
}

// PushAssets handles POST /assets: replaces the candidate list and runs one
// evaluation pass against the current scoring config.
func (h *DeduperHandler) PushAssets(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if len(req.Assets) > constants.MaxAssetsPerPush {
		respondError(w, http.StatusRequestEntityTooLarge, "too many assets")
		return
	}

	resp := h.runPass(req.Assets)
	respondJSON(w, http.StatusOK, resp)
}

// PullAssets handles POST /assets/pull: fetches duplicate clusters from the
// Immich server and runs an evaluation pass over them.
func (h *DeduperHandler) PullAssets(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		respondError(w, http.StatusServiceUnavailable, "no Immich connection configured")
		return
	}

	groups, err := h.client.GetDuplicates()
	if err != nil {
		log.Printf("pull: fetching duplicates failed: %v", err)
		respondError(w, http.StatusBadGateway, "fetching duplicates from Immich failed")
		return
	}

	candidates := immich.Candidates(groups)
	h.mu.Lock()
	inAlbum := h.scoring.InAlbum != 0
	h.mu.Unlock()
	// Album membership costs one API call per asset, so it is only looked
	// up when the criterion can actually award points.
	if inAlbum {
		h.client.EnrichAlbums(candidates)
	}

	resp := h.runPass(candidates)
	respondJSON(w, http.StatusOK, resp)
}

// runPass replaces the candidate list, applies the exclusion filter and
// synchronizes the selection core.
func (h *DeduperHandler) runPass(assets []dedupe.Asset) pushResponse {
	h.mu.Lock()
	h.assets = assets
	exclude := h.exclude
	scoring := h.scoring
	h.mu.Unlock()

	candidates := dedupe.FilterExcluded(assets, exclude)
	changed := h.synchronizer.Sync(candidates, scoring)

	return pushResponse{
		Accepted:   len(assets),
		Candidates: len(candidates),
		Changed:    changed,
		Selected:   h.store.Selected(),
	}
}

// cardsRequest is the body of a rendered-card announcement.
type cardsRequest struct {
	Cards []CardSpec `json:"cards"`
}

// RegisterCards handles POST /cards: the frontend announces the rendered
// card set after each render. A pass waiting for cards applies as soon as
// the set becomes non-empty.
func (h *DeduperHandler) RegisterCards(w http.ResponseWriter, r *http.Request) {
	var req cardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	accepted := h.registry.Register(req.Cards)
	respondJSON(w, http.StatusOK, map[string]int{"accepted": accepted})
}

// GetSurface handles GET /surface: the full rendered-surface snapshot for
// clients that poll instead of streaming.
func (h *DeduperHandler) GetSurface(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.registry.Snapshot())
}
