package dedupe

import (
	"sort"
	"sync"
)

// Recorder captures the Decision for every cluster of the most recent
// evaluation pass, retrievable by group id for the audit view and by winning
// asset id for inline hints. Recording a new pass replaces the previous one.
type Recorder struct {
	mu      sync.RWMutex
	byGroup map[int64]Decision
	reasons map[int64][]Reason
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		byGroup: make(map[int64]Decision),
		reasons: make(map[int64][]Reason),
	}
}

// Reset clears all recorded decisions. Called at the start of each pass.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byGroup = make(map[int64]Decision)
	r.reasons = make(map[int64][]Reason)
}

// Record stores a cluster decision, indexing reasons under every selected
// asset id.
func (r *Recorder) Record(d Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byGroup[d.GroupID] = d
	for _, id := range d.SelectedIDs {
		r.reasons[id] = memberReasons(d, id)
	}
}

func memberReasons(d Decision, assetID int64) []Reason {
	for _, m := range d.Members {
		if m.AssetID == assetID {
			return m.Reasons
		}
	}
	return nil
}

// Decision returns the recorded decision for a group id.
func (r *Recorder) Decision(groupID int64) (Decision, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byGroup[groupID]
	return d, ok
}

// Decisions returns all recorded decisions ordered by group id.
func (r *Recorder) Decisions() []Decision {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Decision, 0, len(r.byGroup))
	for _, d := range r.byGroup {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out
}

// Reasons returns the reason list for a selected asset, or nil when the
// asset was not selected in the last pass.
func (r *Recorder) Reasons(assetID int64) []Reason {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reasons[assetID]
}

// ReasonsByAsset returns a copy of the selected-asset reason index.
func (r *Recorder) ReasonsByAsset() map[int64][]Reason {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int64][]Reason, len(r.reasons))
	for id, reasons := range r.reasons {
		out[id] = reasons
	}
	return out
}
