package dedupe

import "strings"

// ExcludeConfig filters candidate assets out by filename before grouping.
// Filenames holds comma-separated filters: a filter starting with "." matches
// as a suffix (extension), anything else matches as a substring. Matching is
// case-insensitive.
type ExcludeConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Filenames string `json:"filenames" yaml:"filenames"`
}

// Excludes reports whether the asset matches any configured filter.
func (c *ExcludeConfig) Excludes(a *Asset) bool {
	if !c.Enabled || c.Filenames == "" || a == nil || a.OriginalFileName == "" {
		return false
	}

	name := strings.ToLower(a.OriginalFileName)
	for f := range strings.SplitSeq(c.Filenames, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if strings.HasPrefix(f, ".") {
			if strings.HasSuffix(name, f) {
				return true
			}
		} else if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// FilterExcluded returns the assets that survive the exclusion filter,
// preserving order. With an inactive filter the input is returned unchanged.
func FilterExcluded(assets []Asset, cfg ExcludeConfig) []Asset {
	if !cfg.Enabled || cfg.Filenames == "" {
		return assets
	}
	out := make([]Asset, 0, len(assets))
	for i := range assets {
		if !cfg.Excludes(&assets[i]) {
			out = append(out, assets[i])
		}
	}
	return out
}
