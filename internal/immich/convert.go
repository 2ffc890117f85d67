package immich

import (
	"log"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// maxAlbumLookups caps per-pass album lookups so a huge duplicate set cannot
// turn one pull into thousands of API calls.
const maxAlbumLookups = 500

// Candidates flattens duplicate clusters into scoring candidates. Numeric ids
// are assigned in encounter order starting at 1; every asset in the same
// cluster shares a group id. Cluster and member order is preserved.
func Candidates(groups []DuplicateGroup) []dedupe.Asset {
	var out []dedupe.Asset
	var autoID int64

	for gi := range groups {
		groupID := int64(gi + 1)
		for _, a := range groups[gi].Assets {
			autoID++
			gid := groupID
			out = append(out, dedupe.Asset{
				AutoID:           autoID,
				AssetID:          a.ID,
				OwnerID:          a.OwnerID,
				OriginalFileName: a.OriginalFileName,
				OriginalPath:     a.OriginalPath,
				FileCreatedAt:    a.FileCreatedAt,
				IsFavorite:       a.IsFavorite,
				LivePhotoVideoID: a.LivePhotoVideoID,
				GroupID:          &gid,
				Exif:             a.ExifInfo,
			})
		}
	}
	return out
}

// EnrichAlbums fills each candidate's album list from the albums endpoint.
// Best effort: a failed lookup leaves the asset without albums, which scoring
// treats as not in any album.
func (im *Immich) EnrichAlbums(assets []dedupe.Asset) {
	n := len(assets)
	if n > maxAlbumLookups {
		log.Printf("immich: limiting album lookups to %d of %d assets", maxAlbumLookups, n)
		n = maxAlbumLookups
	}
	for i := 0; i < n; i++ {
		albums, err := im.GetAssetAlbums(assets[i].AssetID)
		if err != nil {
			log.Printf("immich: album lookup for %s failed: %v", assets[i].AssetID, err)
			continue
		}
		for _, album := range albums {
			assets[i].Albums = append(assets[i].Albums, album.AlbumName)
		}
	}
}
