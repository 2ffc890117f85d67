package immich

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Immich represents a client for the Immich API. Authentication uses a
// long-lived API key sent as the x-api-key header on every request.
type Immich struct {
	Url       string
	parsedURL *url.URL
	apiKey    string
}

// NewImmich creates a new Immich client
func NewImmich(rawURL, apiKey string) (*Immich, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("immich URL is empty")
	}
	apiURL := strings.TrimSuffix(rawURL, "/") + "/api"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Immich URL: %w", err)
	}
	return &Immich{Url: apiURL, parsedURL: parsed, apiKey: apiKey}, nil
}

// resolveURL builds a full URL from the base API URL and the given path segments.
// If the last segment contains a query string (e.g. "duplicates?page=2"), it is
// split so JoinPath only receives the path portion and the query is appended.
func (im *Immich) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return im.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := im.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return im.parsedURL.JoinPath(pathSegments...).String()
}

// readErrorBody reads the response body for error messages.
// Returns empty string if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
