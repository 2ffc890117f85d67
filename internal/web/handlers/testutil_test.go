package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/metalingusman/immich-deduper/internal/config"
	"github.com/metalingusman/immich-deduper/internal/immich"
	"github.com/metalingusman/immich-deduper/internal/selection"
)

// countingMirror records every push for assertions
type countingMirror struct {
	pushes int
	total  int
	ids    []int64
}

func (m *countingMirror) Push(total int, selectedIDs []int64) error {
	m.pushes++
	m.total = total
	m.ids = selectedIDs
	return nil
}

var _ selection.Mirror = (*countingMirror)(nil)

// newTestHandler creates a handler with embedded defaults, no database and
// no Immich connection, with wait timing tightened for tests.
func newTestHandler(t *testing.T, mirror selection.Mirror, client *immich.Immich) *DeduperHandler {
	t.Helper()
	h := NewDeduperHandler(config.Load(), nil, mirror, client)
	h.Synchronizer().SetWaitTiming(200*time.Millisecond, 2*time.Millisecond)
	t.Cleanup(h.Dispose)
	return h
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
