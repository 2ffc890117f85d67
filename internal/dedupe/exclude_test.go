package dedupe

import (
	"reflect"
	"testing"
)

func TestExcludeConfig_Excludes(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ExcludeConfig
		fileName string
		expected bool
	}{
		{"disabled", ExcludeConfig{Enabled: false, Filenames: ".png"}, "a.png", false},
		{"no filters", ExcludeConfig{Enabled: true}, "a.png", false},
		{"suffix match", ExcludeConfig{Enabled: true, Filenames: ".png"}, "shot.PNG", true},
		{"suffix no match", ExcludeConfig{Enabled: true, Filenames: ".png"}, "shot.jpg", false},
		{"substring match", ExcludeConfig{Enabled: true, Filenames: "screenshot"}, "Screenshot_2023.jpg", true},
		{"multiple filters", ExcludeConfig{Enabled: true, Filenames: " .gif , IMG_ "}, "img_0001.heic", true},
		{"empty filter entries ignored", ExcludeConfig{Enabled: true, Filenames: ", ,"}, "a.jpg", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Asset{AutoID: 1, OriginalFileName: tc.fileName}
			if got := tc.cfg.Excludes(&a); got != tc.expected {
				t.Errorf("Excludes(%q) = %v; want %v", tc.fileName, got, tc.expected)
			}
		})
	}
}

func TestFilterExcluded(t *testing.T) {
	assets := []Asset{
		{AutoID: 1, OriginalFileName: "keep.jpg"},
		{AutoID: 2, OriginalFileName: "screenshot.png"},
		{AutoID: 3, OriginalFileName: "keep.heic"},
	}
	cfg := ExcludeConfig{Enabled: true, Filenames: ".png"}

	got := FilterExcluded(assets, cfg)

	wantIDs := []int64{1, 3}
	var gotIDs []int64
	for _, a := range got {
		gotIDs = append(gotIDs, a.AutoID)
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("FilterExcluded kept %v; want %v", gotIDs, wantIDs)
	}
}
