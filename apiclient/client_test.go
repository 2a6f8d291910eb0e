// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/geocode"
	"github.com/danielhkuo/areamap/models"
	"github.com/danielhkuo/areamap/workspace"
)

var (
	_ workspace.AreaAPI  = (*Client)(nil)
	_ workspace.Geocoder = (*Client)(nil)
	_ workspace.Locator  = (*Client)(nil)
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/areas", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("userId") != "user1" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "UserId is required"})
			return
		}
		writeJSON(w, http.StatusOK, []models.Area{{
			ID: "a1", Name: "Park", UserID: "user1",
			Coordinates: []geo.LatLng{{28.6, 77.2}, {28.7, 77.3}, {28.5, 77.4}},
		}})
	})
	mux.HandleFunc("POST /api/areas", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateAreaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON"})
			return
		}
		if req.Name == "" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing required fields"})
			return
		}
		writeJSON(w, http.StatusCreated, models.Area{ID: "new", Name: req.Name, Coordinates: req.Coordinates, UserID: req.UserID})
	})
	mux.HandleFunc("DELETE /api/areas", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "a1":
			writeJSON(w, http.StatusOK, models.DeleteAreaResponse{Success: true})
		case "boom":
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete area", Details: "disk full"})
		default:
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Area not found"})
		}
	})
	mux.HandleFunc("GET /api/geocode", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []geocode.Result{{Point: geo.LatLng{28.6129, 77.2295}, DisplayName: r.URL.Query().Get("q")}})
	})
	mux.HandleFunc("GET /api/locate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LocateResponse{Point: geo.LatLng{28.5355, 77.3910}})
	})
	mux.HandleFunc("GET /plain", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListAreas(t *testing.T) {
	c := New(newTestServer(t).URL+"/", nil)

	areas, err := c.ListAreas(context.Background(), "user1")
	if err != nil {
		t.Fatalf("ListAreas: %v", err)
	}
	if len(areas) != 1 || areas[0].ID != "a1" || len(areas[0].Coordinates) != 3 {
		t.Errorf("Unexpected areas %+v", areas)
	}

	_, err = c.ListAreas(context.Background(), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "UserId is required" {
		t.Errorf("Expected 400 APIError, got %v", err)
	}
}

func TestCreateArea(t *testing.T) {
	c := New(newTestServer(t).URL, nil)

	area, err := c.CreateArea(context.Background(), models.CreateAreaRequest{
		Name:        "Park",
		Coordinates: []geo.LatLng{{28.6, 77.2}, {28.7, 77.3}, {28.5, 77.4}},
		UserID:      "user1",
	})
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	if area.ID != "new" || area.Name != "Park" || area.UserID != "user1" {
		t.Errorf("Unexpected area %+v", area)
	}

	if _, err := c.CreateArea(context.Background(), models.CreateAreaRequest{}); err == nil {
		t.Error("Expected error for missing fields")
	}
}

func TestDeleteArea(t *testing.T) {
	c := New(newTestServer(t).URL, nil)

	tests := []struct {
		id         string
		wantStatus int
	}{
		{"a1", 0},
		{"missing", http.StatusNotFound},
		{"boom", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := c.DeleteArea(context.Background(), tt.id)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("DeleteArea: %v", err)
				}
				return
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %v", tt.wantStatus, err)
			}
		})
	}
}

func TestSearchAndLocate(t *testing.T) {
	c := New(newTestServer(t).URL, nil)

	results, err := c.Search(context.Background(), "India Gate")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].DisplayName != "India Gate" {
		t.Errorf("Unexpected results %+v", results)
	}

	p, err := c.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if p != (geo.LatLng{28.5355, 77.3910}) {
		t.Errorf("Unexpected location %v", p)
	}
}

func TestNonJSONError(t *testing.T) {
	c := New(newTestServer(t).URL, nil)

	err := c.do(context.Background(), http.MethodGet, "/plain", nil, nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "Bad Gateway" {
		t.Errorf("Unexpected error %+v", apiErr)
	}
}

func TestWorkspaceRoundTrip(t *testing.T) {
	c := New(newTestServer(t).URL, nil)
	w, err := workspace.New(workspace.Config{UserID: "user1", API: c, Geocoder: c, Locator: c})
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	defer w.Close()

	ctx := context.Background()
	if err := w.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	w.SetSearchQuery("India Gate")
	if err := w.SearchLocation(ctx); err != nil {
		t.Fatalf("SearchLocation: %v", err)
	}
	if err := w.UseCurrentLocation(ctx); err != nil {
		t.Fatalf("UseCurrentLocation: %v", err)
	}
	w.ClickMap(geo.LatLng{28.7, 77.1})
	w.SetName("Triangle")
	if err := w.CreateArea(ctx); err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	if err := w.DeleteArea(ctx, "a1"); err != nil {
		t.Fatalf("DeleteArea: %v", err)
	}

	s := w.State()
	if len(s.Areas) != 1 || s.Areas[0].ID != "new" {
		t.Errorf("Expected only the created area, got %+v", s.Areas)
	}
}
