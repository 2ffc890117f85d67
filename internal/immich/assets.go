package immich

import (
	"net/http"
	"net/url"
)

// GetDuplicates retrieves all duplicate clusters detected by the server.
func (im *Immich) GetDuplicates() ([]DuplicateGroup, error) {
	result, err := doGetJSON[[]DuplicateGroup](im, "duplicates")
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// GetAssetAlbums retrieves the albums containing the given asset.
func (im *Immich) GetAssetAlbums(assetID string) ([]Album, error) {
	result, err := doGetJSON[[]Album](im, "albums?assetId="+url.QueryEscape(assetID))
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// TrashAssets moves the given assets to the trash. With force the assets are
// deleted permanently instead.
func (im *Immich) TrashAssets(assetIDs []string, force bool) error {
	body := map[string]any{
		"ids":   assetIDs,
		"force": force,
	}
	return doRequestRaw(im, "DELETE", "assets", body, http.StatusNoContent, http.StatusOK)
}

// RestoreAssets restores the given assets from the trash.
func (im *Immich) RestoreAssets(assetIDs []string) error {
	body := map[string]any{"ids": assetIDs}
	return doRequestRaw(im, "POST", "trash/restore/assets", body, http.StatusOK, http.StatusNoContent)
}

// SetFavorite updates the favorite flag on an asset.
func (im *Immich) SetFavorite(assetID string, favorite bool) (*Asset, error) {
	return doPutJSON[Asset](im, "assets/"+assetID, map[string]any{"isFavorite": favorite})
}

// GetMe returns the user owning the API key. Used to verify credentials.
func (im *Immich) GetMe() (*User, error) {
	return doGetJSON[User](im, "users/me")
}

// GetServerAbout returns server version info. Used as the upstream health check.
func (im *Immich) GetServerAbout() (*ServerAbout, error) {
	return doGetJSON[ServerAbout](im, "server/about")
}
