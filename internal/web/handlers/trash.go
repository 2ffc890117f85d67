package handlers

import (
	"log"
	"net/http"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// trashResponse reports the outcome of a trash operation.
type trashResponse struct {
	Trashed  int      `json:"trashed"`
	AssetIDs []string `json:"assetIds"`
}

// TrashSelected handles POST /selection/trash: moves every selected asset
// to the Immich trash. The selection itself is left untouched; the next
// candidate push reflects the server's new state.
func (h *DeduperHandler) TrashSelected(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		respondError(w, http.StatusServiceUnavailable, "no Immich connection configured")
		return
	}

	selected := h.store.Selected()
	if len(selected) == 0 {
		respondError(w, http.StatusBadRequest, "nothing selected")
		return
	}

	h.mu.Lock()
	assets := h.assets
	h.mu.Unlock()

	byAutoID := make(map[int64]*dedupe.Asset, len(assets))
	for i := range assets {
		byAutoID[assets[i].AutoID] = &assets[i]
	}

	assetIDs := make([]string, 0, len(selected))
	for _, id := range selected {
		a, ok := byAutoID[id]
		if !ok || a.AssetID == "" {
			log.Printf("trash: selected id %d has no known asset, skipping", id)
			continue
		}
		assetIDs = append(assetIDs, a.AssetID)
	}
	if len(assetIDs) == 0 {
		respondError(w, http.StatusConflict, "selected ids do not match any known assets")
		return
	}

	if err := h.client.TrashAssets(assetIDs, false); err != nil {
		log.Printf("trash: trashing %d assets failed: %v", len(assetIDs), err)
		respondError(w, http.StatusBadGateway, "trashing assets failed")
		return
	}

	log.Printf("trash: moved %d assets to trash", len(assetIDs))
	respondJSON(w, http.StatusOK, trashResponse{
		Trashed:  len(assetIDs),
		AssetIDs: assetIDs,
	})
}
