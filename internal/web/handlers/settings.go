package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// settingsPayload is the settings document exchanged with clients.
type settingsPayload struct {
	Weights *dedupe.ScoringConfig `json:"weights,omitempty"`
	Exclude *dedupe.ExcludeConfig `json:"exclude,omitempty"`
}

// GetSettings handles GET /settings.
func (h *DeduperHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	scoring := h.scoring
	exclude := h.exclude
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, settingsPayload{
		Weights: &scoring,
		Exclude: &exclude,
	})
}

// UpdateSettings handles PUT /settings: applies the given sections, persists
// them when a database is configured, and re-evaluates the current candidate
// list under the new policy. A changed config yields a fresh pass; an
// unchanged one is skipped by the signature check.
func (h *DeduperHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Weights == nil && req.Exclude == nil {
		respondError(w, http.StatusBadRequest, "no settings sections given")
		return
	}

	h.mu.Lock()
	if req.Weights != nil {
		h.scoring = *req.Weights
	}
	if req.Exclude != nil {
		h.exclude = *req.Exclude
	}
	assets := h.assets
	h.mu.Unlock()

	if h.settings != nil {
		if req.Weights != nil {
			if err := h.settings.SaveScoring(r.Context(), *req.Weights); err != nil {
				log.Printf("settings: persisting scoring config failed: %v", err)
			}
		}
		if req.Exclude != nil {
			if err := h.settings.SaveExclude(r.Context(), *req.Exclude); err != nil {
				log.Printf("settings: persisting exclude config failed: %v", err)
			}
		}
	}

	resp := h.runPass(assets)
	respondJSON(w, http.StatusOK, resp)
}
