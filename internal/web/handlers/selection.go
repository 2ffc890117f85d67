package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/metalingusman/immich-deduper/internal/selection"
)

// selectionResponse is the selection state returned after every mutation.
type selectionResponse struct {
	SelectedIDs []int64               `json:"selectedIds"`
	CntTotal    int                   `json:"cntTotal"`
	Buttons     selection.ButtonState `json:"buttons"`
}

func (h *DeduperHandler) selectionState() selectionResponse {
	return selectionResponse{
		SelectedIDs: h.store.Selected(),
		CntTotal:    h.store.Total(),
		Buttons:     h.store.ButtonState(),
	}
}

// GetSelection handles GET /selection.
func (h *DeduperHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.selectionState())
}

// Toggle handles POST /selection/toggle: flips one asset in or out of the
// selected set. Toggling does not push the mirror.
func (h *DeduperHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID *int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	h.store.Toggle(*req.ID)
	respondJSON(w, http.StatusOK, h.selectionState())
}

// SelectAll handles POST /selection/select-all.
func (h *DeduperHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SelectAll(); err != nil {
		respondError(w, http.StatusInternalServerError, "mirror push failed")
		return
	}
	respondJSON(w, http.StatusOK, h.selectionState())
}

// ClearAll handles POST /selection/clear-all.
func (h *DeduperHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(); err != nil {
		respondError(w, http.StatusInternalServerError, "mirror push failed")
		return
	}
	respondJSON(w, http.StatusOK, h.selectionState())
}

// groupIDParam parses the {groupId} URL parameter.
func groupIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "groupId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return 0, false
	}
	return id, true
}

// SelectGroup handles POST /selection/groups/{groupId}/select.
func (h *DeduperHandler) SelectGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	if err := h.store.SelectGroup(groupID); err != nil {
		respondError(w, http.StatusInternalServerError, "mirror push failed")
		return
	}
	respondJSON(w, http.StatusOK, h.selectionState())
}

// ClearGroup handles POST /selection/groups/{groupId}/clear.
func (h *DeduperHandler) ClearGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	if err := h.store.ClearGroup(groupID); err != nil {
		respondError(w, http.StatusInternalServerError, "mirror push failed")
		return
	}
	respondJSON(w, http.StatusOK, h.selectionState())
}
