package dedupe

import (
	"fmt"
	"strings"
)

// lowSimThreshold is the default similarity confidence at or below which a
// cluster is considered too uncertain for auto-selection, used when the
// config does not set its own. A confidence of zero means "unknown" and does
// not trigger the skip.
const lowSimThreshold = 0.96

// skipThreshold resolves the effective low-confidence threshold.
func skipThreshold(cfg ScoringConfig) float64 {
	if cfg.SkipLowThreshold > 0 {
		return cfg.SkipLowThreshold
	}
	return lowSimThreshold
}

// ScoreCluster evaluates one cluster under the given config and returns its
// Decision. Rules short-circuit in order: live-motion override, low-confidence
// skip, weighted scoring. Scoring is deterministic: the same cluster and
// config always produce the same Decision.
func ScoreCluster(c Cluster, cfg ScoringConfig) Decision {
	if ids, members := liveMembers(c, cfg); len(ids) > 0 {
		return Decision{
			GroupID:     c.GroupID,
			Status:      StatusLivePhoto,
			SelectedIDs: ids,
			Summary:     "all live photo assets selected",
			Members:     members,
		}
	}

	if members := lowSimMembers(c, cfg); len(members) > 0 {
		return Decision{
			GroupID: c.GroupID,
			Status:  StatusSkipped,
			Summary: fmt.Sprintf("skipped: low similarity (<%.2f)", skipThreshold(cfg)),
			Members: members,
		}
	}

	return scoreWeighted(c, cfg)
}

// liveMembers returns the ids and audit entries for every live-motion member
// when the all-live override is enabled. Live assets pair a still with a
// motion clip and are rarely true duplicates of a plain still, so the
// override keeps every one of them.
func liveMembers(c Cluster, cfg ScoringConfig) ([]int64, []MemberScore) {
	if !cfg.AllLive {
		return nil, nil
	}
	var ids []int64
	var members []MemberScore
	for i := range c.Assets {
		if c.Assets[i].IsLivePhoto() {
			ids = append(ids, c.Assets[i].AutoID)
			members = append(members, MemberScore{
				AssetID: c.Assets[i].AutoID,
				Reasons: []Reason{{Criterion: CriterionLivePhoto}},
			})
		}
	}
	return ids, members
}

// lowSimMembers returns audit entries for members whose similarity confidence
// is nonzero but at or below the threshold, when the skip flag is enabled.
// Any such member disqualifies the whole cluster from auto-selection.
func lowSimMembers(c Cluster, cfg ScoringConfig) []MemberScore {
	if !cfg.SkipLow {
		return nil
	}
	threshold := skipThreshold(cfg)
	var members []MemberScore
	for i := range c.Assets {
		score := c.Assets[i].SimScore
		if score != 0 && score <= threshold {
			members = append(members, MemberScore{
				AssetID:  c.Assets[i].AutoID,
				SimScore: score,
				Reasons:  []Reason{{Criterion: CriterionLowSim}},
			})
		}
	}
	return members
}

func scoreWeighted(c Cluster, cfg ScoringConfig) Decision {
	vectors := EvaluateCluster(c)
	members := make([]MemberScore, len(vectors))

	timestamps := make([]string, 0, len(vectors))
	for _, v := range vectors {
		if v.Timestamp != "" {
			timestamps = append(timestamps, v.Timestamp)
		}
	}
	tsEligible := len(timestamps) > 1 && !uniformStrings(timestamps)
	tsMin, tsMax := minMaxStrings(timestamps)

	for i, v := range vectors {
		var score int
		var reasons []Reason
		award := func(pts int, crit Criterion) {
			score += pts
			reasons = append(reasons, Reason{Criterion: crit, Points: pts})
		}

		if v.Timestamp != "" && tsEligible {
			if cfg.Earlier > 0 && v.Timestamp == tsMin {
				award(cfg.Earlier*10, CriterionEarlier)
			}
			if cfg.Later > 0 && v.Timestamp == tsMax {
				award(cfg.Later*10, CriterionLater)
			}
		}

		type extremal struct {
			values []int64
			max    bool
			weight int
			crit   Criterion
		}
		for _, e := range []extremal{
			{collect(vectors, func(v CriterionVector) int64 { return int64(v.ExifCount) }), true, cfg.ExifRich, CriterionExifRich},
			{collect(vectors, func(v CriterionVector) int64 { return int64(v.ExifCount) }), false, cfg.ExifPoor, CriterionExifPoor},
			{collect(vectors, func(v CriterionVector) int64 { return v.FileSize }), true, cfg.SizeBig, CriterionBigSize},
			{collect(vectors, func(v CriterionVector) int64 { return v.FileSize }), false, cfg.SizeSmall, CriterionSmallSize},
			{collect(vectors, func(v CriterionVector) int64 { return int64(v.DimSum) }), true, cfg.DimBig, CriterionBigDim},
			{collect(vectors, func(v CriterionVector) int64 { return int64(v.DimSum) }), false, cfg.DimSmall, CriterionSmallDim},
			{collect(vectors, func(v CriterionVector) int64 { return int64(v.NameLen) }), true, cfg.NameLong, CriterionLongName},
			{collect(vectors, func(v CriterionVector) int64 { return int64(v.NameLen) }), false, cfg.NameShort, CriterionShortName},
		} {
			if pts := extremalPoints(e.values, i, e.max, e.weight); pts > 0 {
				award(pts, e.crit)
			}
		}

		if cfg.TypeJpg > 0 && (v.FileType == "jpg" || v.FileType == "jpeg") {
			award(cfg.TypeJpg*10, CriterionJpg)
		}
		if cfg.TypePng > 0 && v.FileType == "png" {
			award(cfg.TypePng*10, CriterionPng)
		}
		if cfg.TypeHeic > 0 && (v.FileType == "heic" || v.FileType == "heif") {
			award(cfg.TypeHeic*10, CriterionHeic)
		}

		if cfg.Favorite > 0 && v.IsFavorite {
			award(cfg.Favorite*10, CriterionFavorite)
		}
		if cfg.InAlbum > 0 && v.InAlbum {
			award(cfg.InAlbum*10, CriterionInAlbum)
		}

		if cfg.Owner.Weight > 0 && cfg.Owner.Key != "" && v.OwnerID == cfg.Owner.Key {
			award(cfg.Owner.Weight*10, CriterionOwner)
		}
		if cfg.Path.Weight > 0 && cfg.Path.Key != "" && strings.Contains(v.Path, cfg.Path.Key) {
			award(cfg.Path.Weight*10, CriterionPath)
		}

		members[i] = MemberScore{AssetID: v.AssetID, Score: score, Reasons: reasons}
	}

	maxScore := members[0].Score
	for _, m := range members[1:] {
		if m.Score > maxScore {
			maxScore = m.Score
		}
	}
	var top []MemberScore
	for _, m := range members {
		if m.Score == maxScore {
			top = append(top, m)
		}
	}

	if len(top) > 1 {
		return Decision{
			GroupID: c.GroupID,
			Status:  StatusNoWinner,
			Summary: fmt.Sprintf("no winner: %d assets tied at score %d", len(top), maxScore),
			Members: members,
		}
	}

	winner := top[0]
	return Decision{
		GroupID:     c.GroupID,
		Status:      StatusSelected,
		SelectedIDs: []int64{winner.AssetID},
		Summary:     fmt.Sprintf("selected #%d (score: %d)", winner.AssetID, winner.Score),
		Members:     members,
	}
}

// extremalPoints awards weight*10 to the member at idx when it achieves the
// extremal value of a non-uniform criterion. Uniform values across the
// cluster award nothing: a criterion that cannot discriminate stays silent.
func extremalPoints(values []int64, idx int, max bool, weight int) int {
	if weight <= 0 || uniformInts(values) {
		return 0
	}
	target := values[0]
	for _, v := range values[1:] {
		if (max && v > target) || (!max && v < target) {
			target = v
		}
	}
	if values[idx] == target {
		return weight * 10
	}
	return 0
}

func collect(vectors []CriterionVector, f func(CriterionVector) int64) []int64 {
	out := make([]int64, len(vectors))
	for i, v := range vectors {
		out[i] = f(v)
	}
	return out
}

func uniformInts(values []int64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func uniformStrings(values []string) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func minMaxStrings(values []string) (minVal, maxVal string) {
	if len(values) == 0 {
		return "", ""
	}
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
