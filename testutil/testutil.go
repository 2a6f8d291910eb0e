// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/areamap/cliparse"
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/models"
	"github.com/danielhkuo/areamap/store"
)

// TestDSN returns a shared-memory SQLite DSN private to the running test
func TestDSN(t *testing.T) string {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.DatabaseSQLite,
		DatabaseURL:      TestDSN(t),
		DatabaseName:     "geofence_test",
		StrictValidation: true,
		LogLevel:         "error",
		LogFormat:        "text",
	}
}

// SetupTestStore opens an empty area store for cfg and closes it when the test ends
func SetupTestStore(t *testing.T, cfg cliparse.Config) store.AreaStore {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect test store: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })

	return s
}

// TestTriangle is a valid area inside Delhi NCR
var TestTriangle = []geo.LatLng{{28.6139, 77.2090}, {28.7041, 77.1025}, {28.5355, 77.3910}}

// CreateTestArea persists an area for userID and returns it
func CreateTestArea(t *testing.T, s store.AreaStore, name, userID string) models.Area {
	t.Helper()

	a, err := s.Create(context.Background(), models.Area{
		Name:        name,
		Coordinates: TestTriangle,
		UserID:      userID,
	})
	if err != nil {
		t.Fatalf("Failed to create test area: %v", err)
	}
	return a
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError decodes an error response and checks its message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, message string) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
	return resp
}
