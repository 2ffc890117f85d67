package immich

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const duplicatesJSON = `[
  {
    "duplicateId": "dup-1",
    "assets": [
      {
        "id": "asset-a",
        "ownerId": "owner-1",
        "originalFileName": "IMG_0001.jpg",
        "originalPath": "/photos/IMG_0001.jpg",
        "fileCreatedAt": "2023-05-01T10:00:00.000Z",
        "isFavorite": true,
        "exifInfo": {
          "make": "Apple",
          "model": "iPhone 12",
          "exifImageWidth": 4032,
          "exifImageHeight": 3024,
          "fileSizeInByte": 2500000
        }
      },
      {
        "id": "asset-b",
        "ownerId": "owner-1",
        "originalFileName": "IMG_0001 (1).jpg",
        "originalPath": "/photos/IMG_0001 (1).jpg",
        "fileCreatedAt": "2023-05-01T10:00:05.000Z",
        "isFavorite": false,
        "livePhotoVideoId": "video-b"
      }
    ]
  },
  {
    "duplicateId": "dup-2",
    "assets": [
      {
        "id": "asset-c",
        "ownerId": "owner-2",
        "originalFileName": "DSC_100.png",
        "originalPath": "/photos/DSC_100.png",
        "fileCreatedAt": "2024-01-15T08:30:00.000Z",
        "isFavorite": false
      }
    ]
  }
]`

func setupMockServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/duplicates", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(duplicatesJSON))
	})

	mux.HandleFunc("/api/assets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			IDs   []string `json:"ids"`
			Force bool     `json:"force"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.IDs) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/api/trash/restore/assets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":2}`))
	})

	mux.HandleFunc("/api/albums", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("assetId") {
		case "asset-a":
			w.Write([]byte(`[{"id":"album-1","albumName":"Vacation"}]`))
		case "":
			http.Error(w, "bad request", http.StatusBadRequest)
		default:
			w.Write([]byte(`[]`))
		}
	})

	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"owner-1","email":"user@example.com","name":"Test User"}`))
	})

	mux.HandleFunc("/api/server/about", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"v1.119.0"}`))
	})

	mux.HandleFunc("/api/assets/asset-a", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case "GET":
			w.Write([]byte(`{"id":"asset-a","originalFileName":"IMG_0001.jpg","isFavorite":true}`))
		case "PUT":
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			fav, _ := body["isFavorite"].(bool)
			resp := map[string]any{"id": "asset-a", "originalFileName": "IMG_0001.jpg", "isFavorite": fav}
			json.NewEncoder(w).Encode(resp)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, server *httptest.Server) *Immich {
	t.Helper()
	im, err := NewImmich(server.URL, "test-key")
	if err != nil {
		t.Fatalf("NewImmich failed: %v", err)
	}
	return im
}

func TestNewImmich_EmptyURL(t *testing.T) {
	_, err := NewImmich("", "key")
	if err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestGetDuplicates(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	groups, err := im.GetDuplicates()
	if err != nil {
		t.Fatalf("GetDuplicates failed: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 duplicate groups, got %d", len(groups))
	}

	if groups[0].DuplicateID != "dup-1" {
		t.Errorf("expected duplicateId 'dup-1', got '%s'", groups[0].DuplicateID)
	}

	if len(groups[0].Assets) != 2 {
		t.Fatalf("expected 2 assets in first group, got %d", len(groups[0].Assets))
	}

	first := groups[0].Assets[0]
	if first.ID != "asset-a" {
		t.Errorf("expected asset id 'asset-a', got '%s'", first.ID)
	}
	if !first.IsFavorite {
		t.Error("expected asset-a to be favorite")
	}
	if first.ExifInfo == nil {
		t.Fatal("expected exif info on asset-a")
	}
	if first.ExifInfo.Make == nil || *first.ExifInfo.Make != "Apple" {
		t.Error("expected exif make 'Apple'")
	}
	if first.ExifInfo.FileSizeInByte == nil || *first.ExifInfo.FileSizeInByte != 2500000 {
		t.Error("expected file size 2500000")
	}

	second := groups[0].Assets[1]
	if second.LivePhotoVideoID != "video-b" {
		t.Errorf("expected live photo video id 'video-b', got '%s'", second.LivePhotoVideoID)
	}
	if second.ExifInfo != nil {
		t.Error("expected no exif info on asset-b")
	}
}

func TestGetDuplicates_Unauthorized(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im, err := NewImmich(server.URL, "wrong-key")
	if err != nil {
		t.Fatalf("NewImmich failed: %v", err)
	}

	_, err = im.GetDuplicates()
	if err == nil {
		t.Error("expected error for wrong API key")
	}
}

func TestTrashAssets(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	if err := im.TrashAssets([]string{"asset-a", "asset-b"}, false); err != nil {
		t.Errorf("TrashAssets failed: %v", err)
	}
}

func TestRestoreAssets(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	if err := im.RestoreAssets([]string{"asset-a", "asset-b"}); err != nil {
		t.Errorf("RestoreAssets failed: %v", err)
	}
}

func TestSetFavorite(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	asset, err := im.SetFavorite("asset-a", false)
	if err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}

	if asset.IsFavorite {
		t.Error("expected favorite to be cleared")
	}
}

func TestGetMe(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	user, err := im.GetMe()
	if err != nil {
		t.Fatalf("GetMe failed: %v", err)
	}

	if user.ID != "owner-1" {
		t.Errorf("expected user id 'owner-1', got '%s'", user.ID)
	}
}

func TestGetServerAbout(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	about, err := im.GetServerAbout()
	if err != nil {
		t.Fatalf("GetServerAbout failed: %v", err)
	}

	if about.Version != "v1.119.0" {
		t.Errorf("expected version 'v1.119.0', got '%s'", about.Version)
	}
}

func TestCandidates(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	groups, err := im.GetDuplicates()
	if err != nil {
		t.Fatalf("GetDuplicates failed: %v", err)
	}

	assets := Candidates(groups)

	if len(assets) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(assets))
	}

	// Sequential numeric ids in encounter order
	for i, a := range assets {
		if a.AutoID != int64(i+1) {
			t.Errorf("expected autoId %d at position %d, got %d", i+1, i, a.AutoID)
		}
	}

	// Cluster membership carries over to group ids
	if assets[0].GroupID == nil || assets[1].GroupID == nil || assets[2].GroupID == nil {
		t.Fatal("expected group ids on all candidates")
	}
	if *assets[0].GroupID != *assets[1].GroupID {
		t.Error("expected assets of dup-1 to share a group id")
	}
	if *assets[0].GroupID == *assets[2].GroupID {
		t.Error("expected dup-2 to have a different group id")
	}

	if assets[1].LivePhotoVideoID != "video-b" {
		t.Error("expected live photo video id to carry over")
	}
	if !assets[1].IsLivePhoto() {
		t.Error("expected asset-b to be a live photo")
	}

	if assets[0].Exif == nil || assets[0].Exif.FieldCount() != 5 {
		t.Errorf("expected 5 exif fields on first candidate")
	}
}

func TestEnrichAlbums(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	groups, err := im.GetDuplicates()
	if err != nil {
		t.Fatalf("GetDuplicates failed: %v", err)
	}
	assets := Candidates(groups)

	im.EnrichAlbums(assets)

	if !reflect.DeepEqual(assets[0].Albums, []string{"Vacation"}) {
		t.Errorf("expected asset-a in album Vacation, got %v", assets[0].Albums)
	}
	if len(assets[1].Albums) != 0 {
		t.Errorf("expected no albums on asset-b, got %v", assets[1].Albums)
	}
}

func TestIsNotFoundError(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	im := newTestClient(t, server)

	_, err := im.SetFavorite("nonexistent", true)
	if err == nil {
		t.Fatal("expected error for unknown asset")
	}
	if !IsNotFoundError(err) {
		t.Errorf("expected not-found error, got: %v", err)
	}
}
