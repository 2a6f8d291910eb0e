// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/areamap/cliparse"
	"github.com/danielhkuo/areamap/handlers"
	"github.com/danielhkuo/areamap/metrics"
	"github.com/danielhkuo/areamap/middleware"
	"github.com/danielhkuo/areamap/store"
)

// NewRouter registers every route. locator may be nil when no GeoIP
// database is configured.
func NewRouter(s store.AreaStore, cfg cliparse.Config, geocoder handlers.Searcher, locator handlers.IPLocator) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	areaHandler := handlers.NewAreaHandler(s, cfg)
	locationHandler := handlers.NewLocationHandler(geocoder, locator)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	// Area resource
	mux.HandleFunc("GET /api/areas", middleware.WithLogging(areaHandler.ListAreas))
	mux.HandleFunc("POST /api/areas", middleware.WithLogging(areaHandler.CreateArea))
	mux.HandleFunc("DELETE /api/areas", middleware.WithLogging(areaHandler.DeleteArea))
	mux.HandleFunc("GET /api/areas/geojson", middleware.WithLogging(areaHandler.AreasGeoJSON))

	// Location helpers for the workspace
	mux.HandleFunc("GET /api/geocode", middleware.WithLogging(locationHandler.Geocode))
	mux.HandleFunc("GET /api/locate", middleware.WithLogging(locationHandler.Locate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("areamap API v1"))
	})

	return mux
}
