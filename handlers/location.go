// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/areamap/auth"
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/geocode"
	"github.com/danielhkuo/areamap/geolocate"
	"github.com/danielhkuo/areamap/middleware"
	"github.com/danielhkuo/areamap/models"
)

// Searcher geocodes free text. *geocode.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]geocode.Result, error)
}

// IPLocator maps an address to a position. *geolocate.GeoIP satisfies it.
type IPLocator interface {
	Lookup(ip string) (geo.LatLng, error)
}

type LocationHandler struct {
	geocoder Searcher
	locator  IPLocator
	ipSalt   string
}

// NewLocationHandler wires the geocoder and the optional GeoIP locator.
// Client addresses are only logged as salted hashes.
func NewLocationHandler(geocoder Searcher, locator IPLocator) *LocationHandler {
	salt, err := auth.GenerateSalt(16)
	if err != nil {
		slog.Warn("failed to generate ip salt", "error", err)
	}
	return &LocationHandler{geocoder: geocoder, locator: locator, ipSalt: salt}
}

// Geocode handles GET /api/geocode?q=
func (h *LocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "q is required")
		return
	}

	results, err := h.geocoder.Search(r.Context(), q)
	if err != nil {
		slog.Error("geocode lookup failed", "query", q, "error", err)
		middleware.JSONResponse(w, http.StatusBadGateway, models.ErrorResponse{
			Error:   "Error searching location",
			Details: err.Error(),
		})
		return
	}
	if results == nil {
		results = []geocode.Result{}
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Locate handles GET /api/locate
func (h *LocationHandler) Locate(w http.ResponseWriter, r *http.Request) {
	if h.locator == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Geolocation is not supported")
		return
	}

	ip := middleware.GetClientIP(r)
	p, err := h.locator.Lookup(ip)
	switch {
	case errors.Is(err, geolocate.ErrNoLocation), errors.Is(err, geolocate.ErrInvalidIP):
		slog.Debug("no location for client", "ip_hash", auth.HashIP(ip, h.ipSalt), "error", err)
		middleware.ErrorResponse(w, http.StatusNotFound, "Unable to retrieve your location")
		return
	case err != nil:
		slog.Error("geoip lookup failed", "ip_hash", auth.HashIP(ip, h.ipSalt), "error", err)
		middleware.ServerError(w, "Internal Server Error", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LocateResponse{Point: p})
}
