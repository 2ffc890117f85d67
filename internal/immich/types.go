package immich

import "github.com/metalingusman/immich-deduper/internal/dedupe"

// Asset is the Immich asset representation returned by the API. The exif
// payload shape matches dedupe.ExifInfo, so it is decoded directly into it.
type Asset struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"ownerId"`
	DeviceAssetID    string           `json:"deviceAssetId,omitempty"`
	Type             string           `json:"type,omitempty"`
	OriginalFileName string           `json:"originalFileName"`
	OriginalPath     string           `json:"originalPath"`
	FileCreatedAt    string           `json:"fileCreatedAt"`
	LocalDateTime    string           `json:"localDateTime,omitempty"`
	IsFavorite       bool             `json:"isFavorite"`
	IsTrashed        bool             `json:"isTrashed,omitempty"`
	DuplicateID      string           `json:"duplicateId,omitempty"`
	LivePhotoVideoID string           `json:"livePhotoVideoId,omitempty"`
	ExifInfo         *dedupe.ExifInfo `json:"exifInfo,omitempty"`
}

// DuplicateGroup is one duplicate cluster as reported by Immich's duplicate
// detection: the cluster id plus its member assets.
type DuplicateGroup struct {
	DuplicateID string  `json:"duplicateId"`
	Assets      []Asset `json:"assets"`
}

// Album is a minimal album representation (membership lookups only).
type Album struct {
	ID         string `json:"id"`
	AlbumName  string `json:"albumName"`
	AssetCount int    `json:"assetCount,omitempty"`
}

// User is the authenticated API-key owner.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ServerAbout carries the server version for the health check.
type ServerAbout struct {
	Version       string `json:"version"`
	VersionURL    string `json:"versionUrl,omitempty"`
	SourceURL     string `json:"sourceUrl,omitempty"`
	SourceVersion string `json:"sourceCommit,omitempty"`
}
