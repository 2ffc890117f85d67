package dedupe

// Cluster is a duplicate group: a group id plus the member assets sharing it,
// in input order.
type Cluster struct {
	GroupID int64
	Assets  []Asset
}

// GroupAssets partitions assets into duplicate clusters. An asset without a
// detected duplicate group falls back to its own id as the group key, so
// ungrouped assets form singleton clusters. Singletons run through scoring
// like any other cluster; their sole member wins trivially.
//
// Clusters are returned in first-seen order. Empty input yields nil.
func GroupAssets(assets []Asset) []Cluster {
	var clusters []Cluster
	index := make(map[int64]int)

	for _, a := range assets {
		gid := a.AutoID
		if a.GroupID != nil {
			gid = *a.GroupID
		}
		i, ok := index[gid]
		if !ok {
			i = len(clusters)
			index[gid] = i
			clusters = append(clusters, Cluster{GroupID: gid})
		}
		clusters[i].Assets = append(clusters[i].Assets, a)
	}
	return clusters
}
