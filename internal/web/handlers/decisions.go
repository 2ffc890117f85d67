package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// ListDecisions handles GET /decisions: every cluster verdict of the most
// recent evaluation pass, ordered by group id.
func (h *DeduperHandler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"decisions": h.recorder.Decisions(),
	})
}

// GetDecision handles GET /decisions/{groupId}: the audit breakdown for one
// cluster.
func (h *DeduperHandler) GetDecision(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(w, r)
	if !ok {
		return
	}

	decision, found := h.recorder.Decision(groupID)
	if !found {
		respondError(w, http.StatusNotFound, "no decision recorded for group")
		return
	}
	respondJSON(w, http.StatusOK, decision)
}

// GetAssetReasons handles GET /assets/{assetId}/reasons: why an asset was
// auto-selected in the last pass. Assets that were not selected have no
// reasons.
func (h *DeduperHandler) GetAssetReasons(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "assetId")
	assetID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	reasons := h.recorder.Reasons(assetID)
	respondJSON(w, http.StatusOK, map[string]any{
		"assetId": assetID,
		"reasons": reasons,
		"label":   dedupe.JoinReasons(reasons),
	})
}

// exportAsset is one asset row in the grouped export.
type exportAsset struct {
	AutoID   int64  `json:"autoId"`
	AssetID  string `json:"id"`
	FileName string `json:"fileName"`
	Selected bool   `json:"selected"`
}

// exportGroup is one duplicate cluster in the grouped export.
type exportGroup struct {
	GroupID int64         `json:"groupId"`
	Assets  []exportAsset `json:"assets"`
}

// Export handles GET /export: the candidate list grouped by duplicate
// cluster with the current selection marks, for external processing.
func (h *DeduperHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	assets := h.assets
	h.mu.Unlock()

	groups := make([]exportGroup, 0)
	for _, cluster := range dedupe.GroupAssets(assets) {
		group := exportGroup{GroupID: cluster.GroupID}
		for _, a := range cluster.Assets {
			group.Assets = append(group.Assets, exportAsset{
				AutoID:   a.AutoID,
				AssetID:  a.AssetID,
				FileName: a.OriginalFileName,
				Selected: h.store.IsSelected(a.AutoID),
			})
		}
		groups = append(groups, group)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"groups":      groups,
		"selectedIds": h.store.Selected(),
		"cntTotal":    h.store.Total(),
	})
}
