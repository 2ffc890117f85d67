package dedupe

import "fmt"

// Asset is a single photo or video candidate as delivered by the asset
// source. Assets are read-only to this package.
type Asset struct {
	AutoID           int64     `json:"autoId"`
	AssetID          string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	OriginalFileName string    `json:"originalFileName"`
	OriginalPath     string    `json:"originalPath"`
	FileCreatedAt    string    `json:"fileCreatedAt"`
	IsFavorite       bool      `json:"isFavorite"`
	LivePhotoVideoID string    `json:"livePhotoVideoId,omitempty"`
	LiveVideoPath    string    `json:"videoPath,omitempty"`
	GroupID          *int64    `json:"groupId,omitempty"`
	SimScore         float64   `json:"simScore,omitempty"`
	Albums           []string  `json:"albums,omitempty"`
	Exif             *ExifInfo `json:"exifInfo,omitempty"`
}

// IsLivePhoto reports whether the asset has a paired motion component.
func (a *Asset) IsLivePhoto() bool {
	return a.LivePhotoVideoID != "" || a.LiveVideoPath != ""
}

// ExifInfo is the metadata bag attached to an asset. Fields are pointers so
// that absent metadata can be told apart from zero values when counting
// richness.
type ExifInfo struct {
	DateTimeOriginal *string  `json:"dateTimeOriginal,omitempty"`
	ModifyDate       *string  `json:"modifyDate,omitempty"`
	Make             *string  `json:"make,omitempty"`
	Model            *string  `json:"model,omitempty"`
	LensModel        *string  `json:"lensModel,omitempty"`
	FNumber          *float64 `json:"fNumber,omitempty"`
	FocalLength      *float64 `json:"focalLength,omitempty"`
	ExposureTime     *string  `json:"exposureTime,omitempty"`
	ISO              *int     `json:"iso,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	Country          *string  `json:"country,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ImageWidth       *int     `json:"exifImageWidth,omitempty"`
	ImageHeight      *int     `json:"exifImageHeight,omitempty"`
	FileSizeInByte   *int64   `json:"fileSizeInByte,omitempty"`
}

// FieldCount returns the number of metadata fields present and non-null.
func (e *ExifInfo) FieldCount() int {
	if e == nil {
		return 0
	}
	count := 0
	present := []bool{
		e.DateTimeOriginal != nil,
		e.ModifyDate != nil,
		e.Make != nil,
		e.Model != nil,
		e.LensModel != nil,
		e.FNumber != nil,
		e.FocalLength != nil,
		e.ExposureTime != nil,
		e.ISO != nil,
		e.Latitude != nil,
		e.Longitude != nil,
		e.City != nil,
		e.State != nil,
		e.Country != nil,
		e.Description != nil,
		e.ImageWidth != nil,
		e.ImageHeight != nil,
		e.FileSizeInByte != nil,
	}
	for _, p := range present {
		if p {
			count++
		}
	}
	return count
}

// KeyedWeight pairs a match key with a weight. The bonus applies only when
// both the key is set and the weight is positive.
type KeyedWeight struct {
	Key    string `json:"key" yaml:"key"`
	Weight int    `json:"weight" yaml:"weight"`
}

// ScoringConfig holds the weighted-criteria policy for auto-selection.
// Weights are non-negative integers; a weight of zero disables the criterion.
type ScoringConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	SkipLow bool `json:"skipLow" yaml:"skipLow"`
	AllLive bool `json:"allLive" yaml:"allLive"`

	// SkipLowThreshold is the similarity confidence at or below which a
	// cluster is skipped when SkipLow is set. Zero falls back to the
	// built-in default.
	SkipLowThreshold float64 `json:"skipLowThreshold" yaml:"skipLowThreshold"`

	Earlier   int `json:"earlier" yaml:"earlier"`
	Later     int `json:"later" yaml:"later"`
	ExifRich  int `json:"exifRich" yaml:"exifRich"`
	ExifPoor  int `json:"exifPoor" yaml:"exifPoor"`
	SizeBig   int `json:"sizeBig" yaml:"sizeBig"`
	SizeSmall int `json:"sizeSmall" yaml:"sizeSmall"`
	DimBig    int `json:"dimBig" yaml:"dimBig"`
	DimSmall  int `json:"dimSmall" yaml:"dimSmall"`
	NameLong  int `json:"nameLong" yaml:"nameLong"`
	NameShort int `json:"nameShort" yaml:"nameShort"`
	TypeJpg   int `json:"typeJpg" yaml:"typeJpg"`
	TypePng   int `json:"typePng" yaml:"typePng"`
	TypeHeic  int `json:"typeHeic" yaml:"typeHeic"`
	Favorite  int `json:"favorite" yaml:"favorite"`
	InAlbum   int `json:"inAlbum" yaml:"inAlbum"`

	Owner KeyedWeight `json:"owner" yaml:"owner"`
	Path  KeyedWeight `json:"path" yaml:"path"`
}

// HasActiveWeights reports whether at least one criterion can award points.
// A pass with no active weights selects nothing.
func (c *ScoringConfig) HasActiveWeights() bool {
	weights := []int{
		c.Earlier, c.Later, c.ExifRich, c.ExifPoor,
		c.SizeBig, c.SizeSmall, c.DimBig, c.DimSmall,
		c.NameLong, c.NameShort, c.TypeJpg, c.TypePng, c.TypeHeic,
		c.Favorite, c.InAlbum,
	}
	for _, w := range weights {
		if w > 0 {
			return true
		}
	}
	return c.Owner.Weight > 0 || c.Path.Weight > 0
}

// Criterion identifies a single scoring axis.
type Criterion string

// Criterion labels. Their string values are user visible in reason hints and
// audit breakdowns.
const (
	CriterionEarlier   Criterion = "Earlier"
	CriterionLater     Criterion = "Later"
	CriterionExifRich  Criterion = "ExifRich"
	CriterionExifPoor  Criterion = "ExifPoor"
	CriterionBigSize   Criterion = "BigSize"
	CriterionSmallSize Criterion = "SmallSize"
	CriterionBigDim    Criterion = "BigDim"
	CriterionSmallDim  Criterion = "SmallDim"
	CriterionLongName  Criterion = "LongName"
	CriterionShortName Criterion = "ShortName"
	CriterionJpg       Criterion = "JPG"
	CriterionPng       Criterion = "PNG"
	CriterionHeic      Criterion = "HEIC"
	CriterionFavorite  Criterion = "Fav"
	CriterionInAlbum   Criterion = "InAlb"
	CriterionOwner     Criterion = "Owner"
	CriterionPath      Criterion = "Path"
	CriterionLivePhoto Criterion = "LivePhoto"
	CriterionLowSim    Criterion = "LowSimilarity"
)

// Reason records why a member earned points for one criterion.
type Reason struct {
	Criterion Criterion `json:"criterion"`
	Points    int       `json:"points"`
}

func (r Reason) String() string {
	if r.Points == 0 {
		return string(r.Criterion)
	}
	return fmt.Sprintf("%s+%d", r.Criterion, r.Points)
}

// JoinReasons renders a reason list the way it appears in hints: comma
// separated, in evaluation order.
func JoinReasons(reasons []Reason) string {
	if len(reasons) == 0 {
		return ""
	}
	out := reasons[0].String()
	for _, r := range reasons[1:] {
		out += ", " + r.String()
	}
	return out
}

// DecisionStatus is the outcome kind for one cluster.
type DecisionStatus string

// Decision outcomes.
const (
	StatusSelected  DecisionStatus = "selected"
	StatusLivePhoto DecisionStatus = "livephoto"
	StatusSkipped   DecisionStatus = "skipped"
	StatusNoWinner  DecisionStatus = "no_winner"
)

// MemberScore is the per-member breakdown kept for audit.
type MemberScore struct {
	AssetID  int64    `json:"assetId"`
	Score    int      `json:"score"`
	Reasons  []Reason `json:"reasons,omitempty"`
	SimScore float64  `json:"simScore,omitempty"`
}

// Decision is the scoring verdict for one cluster. A new Decision replaces
// the previous one for the same group id on every evaluation pass.
type Decision struct {
	GroupID     int64          `json:"groupId"`
	Status      DecisionStatus `json:"status"`
	SelectedIDs []int64        `json:"selectedIds,omitempty"`
	Summary     string         `json:"summary"`
	Members     []MemberScore  `json:"members,omitempty"`
}
