package dedupe

// Result is the outcome of one auto-selection pass over a full asset list.
type Result struct {
	SelectedIDs []int64    `json:"selectedIds"`
	Decisions   []Decision `json:"decisions"`
}

// AutoSelect runs the scoring engine across every duplicate cluster in the
// asset list and returns the union of selected ids plus the per-cluster
// decisions, in cluster order. When rec is non-nil each decision is recorded
// there as a side channel for later inspection; a previously recorded pass is
// cleared first even if this pass ends up selecting nothing.
//
// The pass selects nothing when auto-selection is disabled, the asset list is
// empty, or no criterion weight is active.
func AutoSelect(assets []Asset, cfg ScoringConfig, rec *Recorder) Result {
	if rec != nil {
		rec.Reset()
	}

	if !cfg.Enabled || len(assets) == 0 || !cfg.HasActiveWeights() {
		return Result{}
	}

	var result Result
	for _, cluster := range GroupAssets(assets) {
		d := ScoreCluster(cluster, cfg)
		result.Decisions = append(result.Decisions, d)
		result.SelectedIDs = append(result.SelectedIDs, d.SelectedIDs...)
		if rec != nil {
			rec.Record(d)
		}
	}
	return result
}
