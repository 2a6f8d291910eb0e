// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/geocode"
	"github.com/danielhkuo/areamap/geolocate"
	"github.com/danielhkuo/areamap/models"
	"github.com/danielhkuo/areamap/testutil"
)

type stubSearcher struct {
	results []geocode.Result
	err     error
	got     string
}

func (s *stubSearcher) Search(_ context.Context, q string) ([]geocode.Result, error) {
	s.got = q
	return s.results, s.err
}

type stubLocator map[string]geo.LatLng

func (s stubLocator) Lookup(ip string) (geo.LatLng, error) {
	if ip == "bad" {
		return geo.LatLng{}, errors.New("corrupt database")
	}
	p, ok := s[ip]
	if !ok {
		return geo.LatLng{}, geolocate.ErrNoLocation
	}
	return p, nil
}

func TestGeocode(t *testing.T) {
	gate := geocode.Result{Point: geo.LatLng{28.6129, 77.2295}, DisplayName: "India Gate, New Delhi"}

	tests := []struct {
		name       string
		path       string
		searcher   *stubSearcher
		wantStatus int
		wantLen    int
	}{
		{"found", "/api/geocode?q=India+Gate", &stubSearcher{results: []geocode.Result{gate}}, http.StatusOK, 1},
		{"nothing", "/api/geocode?q=zzzz", &stubSearcher{}, http.StatusOK, 0},
		{"blank", "/api/geocode?q=++", &stubSearcher{}, http.StatusBadRequest, -1},
		{"upstream", "/api/geocode?q=India+Gate", &stubSearcher{err: errors.New("status 503")}, http.StatusBadGateway, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLocationHandler(tt.searcher, nil)
			req := testutil.MakeRequest("GET", tt.path, nil, nil)
			w := httptest.NewRecorder()
			h.Geocode(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantLen < 0 {
				return
			}
			var results []geocode.Result
			testutil.AssertJSON(t, w, &results)
			if results == nil || len(results) != tt.wantLen {
				t.Errorf("Expected %d results, got %v", tt.wantLen, results)
			}
		})
	}
}

func TestGeocode_UpstreamMessage(t *testing.T) {
	h := NewLocationHandler(&stubSearcher{err: errors.New("status 503")}, nil)
	req := testutil.MakeRequest("GET", "/api/geocode?q=x", nil, nil)
	w := httptest.NewRecorder()
	h.Geocode(w, req)

	resp := testutil.AssertError(t, w, "Error searching location")
	if resp.Details != "status 503" {
		t.Errorf("Expected upstream details, got %q", resp.Details)
	}
}

func TestLocate(t *testing.T) {
	locator := stubLocator{"203.0.113.7": {28.6139, 77.2090}}

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, http.StatusOK},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.7"}, http.StatusOK},
		{"unknown", map[string]string{"X-Real-IP": "198.51.100.1"}, http.StatusNotFound},
		{"lookup failure", map[string]string{"X-Real-IP": "bad"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLocationHandler(&stubSearcher{}, locator)
			req := testutil.MakeRequest("GET", "/api/locate", nil, tt.headers)
			w := httptest.NewRecorder()
			h.Locate(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp models.LocateResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Point != (geo.LatLng{28.6139, 77.2090}) {
				t.Errorf("Unexpected point %v", resp.Point)
			}
		})
	}
}

func TestLocate_NoDatabase(t *testing.T) {
	h := NewLocationHandler(&stubSearcher{}, nil)
	req := testutil.MakeRequest("GET", "/api/locate", nil, nil)
	w := httptest.NewRecorder()
	h.Locate(w, req)

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
	testutil.AssertError(t, w, "Geolocation is not supported")
}
