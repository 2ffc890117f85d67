package dedupe

import (
	"reflect"
	"testing"
)

func TestGroupAssets(t *testing.T) {
	tests := []struct {
		name   string
		assets []Asset
		want   []Cluster
	}{
		{
			name:   "empty input",
			assets: nil,
			want:   nil,
		},
		{
			name: "shared group id",
			assets: []Asset{
				{AutoID: 1, GroupID: i64Ptr(100)},
				{AutoID: 2, GroupID: i64Ptr(100)},
				{AutoID: 3, GroupID: i64Ptr(200)},
			},
			want: []Cluster{
				{GroupID: 100, Assets: []Asset{
					{AutoID: 1, GroupID: i64Ptr(100)},
					{AutoID: 2, GroupID: i64Ptr(100)},
				}},
				{GroupID: 200, Assets: []Asset{
					{AutoID: 3, GroupID: i64Ptr(200)},
				}},
			},
		},
		{
			name: "missing group id falls back to own id",
			assets: []Asset{
				{AutoID: 5},
				{AutoID: 6},
			},
			want: []Cluster{
				{GroupID: 5, Assets: []Asset{{AutoID: 5}}},
				{GroupID: 6, Assets: []Asset{{AutoID: 6}}},
			},
		},
		{
			name: "interleaved members keep insertion order",
			assets: []Asset{
				{AutoID: 1, GroupID: i64Ptr(9)},
				{AutoID: 2, GroupID: i64Ptr(8)},
				{AutoID: 3, GroupID: i64Ptr(9)},
			},
			want: []Cluster{
				{GroupID: 9, Assets: []Asset{
					{AutoID: 1, GroupID: i64Ptr(9)},
					{AutoID: 3, GroupID: i64Ptr(9)},
				}},
				{GroupID: 8, Assets: []Asset{
					{AutoID: 2, GroupID: i64Ptr(8)},
				}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GroupAssets(tc.assets)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("GroupAssets() = %+v; want %+v", got, tc.want)
			}
		})
	}
}
