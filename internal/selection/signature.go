package selection

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// Signature computes a cheap fingerprint of an (assets, config) pair: the
// sorted asset ids joined with commas, a separator, and the serialized
// config. Identical signatures imply identical decision sets, so a matching
// signature lets the synchronizer skip a recompute triggered by an unrelated
// re-render.
func Signature(assets []dedupe.Asset, cfg dedupe.ScoringConfig) string {
	ids := make([]int64, len(assets))
	for i := range assets {
		ids[i] = assets[i].AutoID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		// ScoringConfig contains only marshalable fields; this cannot happen.
		cfgJSON = []byte("{}")
	}
	return strings.Join(parts, ",") + "|" + string(cfgJSON)
}
