package dedupe

import "strings"

// CriterionVector holds the derived per-asset metrics the scorer compares.
// Missing metadata degrades to zero or empty values, which never win a
// non-uniform comparison.
type CriterionVector struct {
	AssetID    int64
	Timestamp  string
	ExifCount  int
	FileSize   int64
	DimSum     int
	NameLen    int
	FileType   string
	IsFavorite bool
	InAlbum    bool
	OwnerID    string
	Path       string
}

// EvaluateCluster derives one CriterionVector per cluster member.
func EvaluateCluster(c Cluster) []CriterionVector {
	vectors := make([]CriterionVector, len(c.Assets))
	for i := range c.Assets {
		vectors[i] = evaluateAsset(&c.Assets[i])
	}
	return vectors
}

func evaluateAsset(a *Asset) CriterionVector {
	v := CriterionVector{
		AssetID:    a.AutoID,
		ExifCount:  a.Exif.FieldCount(),
		NameLen:    len(a.OriginalFileName),
		FileType:   fileExtension(a.OriginalFileName),
		IsFavorite: a.IsFavorite,
		InAlbum:    len(a.Albums) > 0,
		OwnerID:    a.OwnerID,
		Path:       a.OriginalPath,
	}

	captured := a.FileCreatedAt
	if a.Exif != nil && a.Exif.DateTimeOriginal != nil && *a.Exif.DateTimeOriginal != "" {
		captured = *a.Exif.DateTimeOriginal
	}
	v.Timestamp = NormalizeTimestamp(captured)

	if a.Exif != nil {
		if a.Exif.FileSizeInByte != nil {
			v.FileSize = *a.Exif.FileSizeInByte
		}
		if a.Exif.ImageWidth != nil {
			v.DimSum += *a.Exif.ImageWidth
		}
		if a.Exif.ImageHeight != nil {
			v.DimSum += *a.Exif.ImageHeight
		}
	}
	return v
}

// fileExtension returns the lowercase extension without the dot, or an empty
// string when the name has none.
func fileExtension(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	idx := strings.LastIndex(lower, ".")
	if idx < 0 || idx == len(lower)-1 {
		return ""
	}
	return lower[idx+1:]
}

// NormalizeTimestamp strips the sub-second fraction from a timestamp while
// preserving its timezone offset or UTC marker, so lexical ordering of the
// results matches chronological ordering. Timestamps without a fraction or
// without a recognizable zone suffix pass through unchanged.
func NormalizeTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	if !strings.Contains(ts, ".") {
		return ts
	}
	beforeDot, _, _ := strings.Cut(ts, ".")
	if idx := strings.LastIndex(ts, "+"); idx >= 0 {
		return beforeDot + "+" + ts[idx+1:]
	}
	if strings.HasSuffix(ts, "Z") {
		return beforeDot + "Z"
	}
	return ts
}
