// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/areamap/auth"
	"github.com/danielhkuo/areamap/cliparse"
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/mapview"
	"github.com/danielhkuo/areamap/metrics"
	"github.com/danielhkuo/areamap/middleware"
	"github.com/danielhkuo/areamap/models"
	"github.com/danielhkuo/areamap/store"
)

type AreaHandler struct {
	store store.AreaStore
	cfg   cliparse.Config
}

func NewAreaHandler(s store.AreaStore, cfg cliparse.Config) *AreaHandler {
	return &AreaHandler{store: s, cfg: cfg}
}

// connect establishes the persistence handle, answering 500 on failure.
func (h *AreaHandler) connect(w http.ResponseWriter, r *http.Request) bool {
	if err := h.store.Connect(r.Context()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		middleware.ServerError(w, "Internal Server Error", err)
		return false
	}
	return true
}

// userID reads and checks the userId query parameter, answering 400 on failure.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("userId")
	if err := auth.ValidateUserID(id); err != nil {
		if errors.Is(err, auth.ErrMissingUserID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "UserId is required")
		} else {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid userId")
		}
		return "", false
	}
	return id, true
}

// ListAreas handles GET /api/areas?userId=
func (h *AreaHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	if !h.connect(w, r) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	areas, err := h.store.List(r.Context(), uid)
	if err != nil {
		slog.Error("failed to list areas", "user_id", uid, "error", err)
		middleware.ServerError(w, "Internal Server Error", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, areas)
}

// validateArea applies the same checks the workspace makes before submitting.
// It returns the message to send back, or "" when the request is acceptable.
func validateArea(req *models.CreateAreaRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "Please enter a name for the area"
	}
	if len(req.Coordinates) < models.MinAreaPoints {
		return "Please select at least 3 points to create an area"
	}
	if !geo.DelhiNCR.ContainsAll(req.Coordinates) {
		return "Coordinates are outside Delhi NCR boundaries"
	}
	return ""
}

// CreateArea handles POST /api/areas
func (h *AreaHandler) CreateArea(w http.ResponseWriter, r *http.Request) {
	if !h.connect(w, r) {
		return
	}

	var req models.CreateAreaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Coordinates == nil || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// List rejects the same ids, so an area stored under one could never be read back.
	if err := auth.ValidateUserID(req.UserID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	if h.cfg.StrictValidation {
		if msg := validateArea(&req); msg != "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
	}

	area, err := h.store.Create(r.Context(), models.Area{
		Name:        req.Name,
		Coordinates: req.Coordinates,
		UserID:      req.UserID,
	})
	if err != nil {
		slog.Error("failed to create area", "error", err)
		middleware.ServerError(w, "Internal Server Error", err)
		return
	}

	metrics.AreasCreatedTotal.Inc()
	slog.Info("area created", "area_id", area.ID, "user_id", area.UserID, "points", len(area.Coordinates))

	middleware.JSONResponse(w, http.StatusCreated, area)
}

// DeleteArea handles DELETE /api/areas?id=
func (h *AreaHandler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	if !h.connect(w, r) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Area ID is required")
		return
	}

	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Area not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete area", "area_id", id, "error", err)
		middleware.ServerError(w, "Failed to delete area", err)
		return
	}

	metrics.AreasDeletedTotal.Inc()
	slog.Info("area deleted", "area_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteAreaResponse{Success: true})
}

// AreasGeoJSON handles GET /api/areas/geojson?userId=
func (h *AreaHandler) AreasGeoJSON(w http.ResponseWriter, r *http.Request) {
	if !h.connect(w, r) {
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	areas, err := h.store.List(r.Context(), uid)
	if err != nil {
		slog.Error("failed to list areas", "user_id", uid, "error", err)
		middleware.ServerError(w, "Internal Server Error", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, mapview.AreasGeoJSON(areas))
}
